package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/omkar-s8203/pune-home-circle/internal/apperr"
	"github.com/omkar-s8203/pune-home-circle/internal/catalog"
	"github.com/omkar-s8203/pune-home-circle/internal/config"
	"github.com/omkar-s8203/pune-home-circle/internal/models"
	"github.com/omkar-s8203/pune-home-circle/internal/repository"
	"github.com/omkar-s8203/pune-home-circle/internal/storage"
)

// SubmitRequest is the listing draft an owner submits for review.
type SubmitRequest struct {
	Title        string
	PropertyType string
	Rent         int
	Area         string
	Description  string
	MapLink      string
	Phone        string
}

// ImageFile is one uploaded image, in the order the owner chose.
type ImageFile struct {
	Name   string
	Reader io.Reader
	Size   int64
}

// SubmitResult reports the outcome of the two-phase create. When the image
// phase fails partway, Property is the saved pending listing, ImagesUploaded
// counts the rows that landed, and ImageErr carries the failure - the owner
// retries the image phase against the same property id.
type SubmitResult struct {
	Property       *models.Property
	ImagesUploaded int
	ImageErr       error
}

type PropertyService interface {
	Submit(ctx context.Context, ident Identity, req SubmitRequest, files []ImageFile) (*SubmitResult, error)
	ResumeImages(ctx context.Context, ident Identity, propertyID string, files []ImageFile) (*SubmitResult, error)
	Get(ctx context.Context, ident Identity, id string) (*models.Property, error)
	ListApproved(ctx context.Context, filter catalog.Filter) ([]models.Property, error)
	ListMine(ctx context.Context, ident Identity) ([]models.Property, error)
	ListAll(ctx context.Context, ident Identity, status *models.PropertyStatus, filter catalog.Filter) ([]models.Property, error)
	Approve(ctx context.Context, ident Identity, id string) error
	Reject(ctx context.Context, ident Identity, id, reason string) error
	Delete(ctx context.Context, ident Identity, id string) error
}

type propertyService struct {
	propertyRepo repository.PropertyRepository
	imageRepo    repository.ImageRepository
	profileRepo  repository.ProfileRepository
	blocklist    BlocklistService
	store        storage.ObjectStore
	cfg          *config.Config
}

func NewPropertyService(
	propertyRepo repository.PropertyRepository,
	imageRepo repository.ImageRepository,
	profileRepo repository.ProfileRepository,
	blocklist BlocklistService,
	store storage.ObjectStore,
	cfg *config.Config,
) PropertyService {
	return &propertyService{
		propertyRepo: propertyRepo,
		imageRepo:    imageRepo,
		profileRepo:  profileRepo,
		blocklist:    blocklist,
		store:        store,
		cfg:          cfg,
	}
}

// Submit runs the two-phase create: validate, blocklist, quota, insert the
// pending listing, then upload images in input order. Failures before the
// insert leave nothing written; a failure during the image phase leaves the
// listing pending with a partial image set (see SubmitResult).
func (s *propertyService) Submit(ctx context.Context, ident Identity, req SubmitRequest, files []ImageFile) (*SubmitResult, error) {
	if !ident.IsAuthenticated() {
		return nil, fmt.Errorf("submit requires a signed-in owner: %w", apperr.ErrUnauthorized)
	}

	if err := s.validateDraft(req); err != nil {
		return nil, err
	}

	rules := s.cfg.Listing
	if len(files) < rules.MinImages || len(files) > rules.MaxImages {
		return nil, fmt.Errorf("a listing needs %d to %d images, got %d: %w",
			rules.MinImages, rules.MaxImages, len(files), apperr.ErrInvalidArgument)
	}

	blocked, err := s.blocklist.IsBlocked(ctx, ident.Email, req.Phone)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, fmt.Errorf("submission contact is on the blocklist: %w", apperr.ErrBlocked)
	}

	count, err := s.propertyRepo.CountNonRejectedByOwner(ctx, ident.UserID)
	if err != nil {
		return nil, err
	}
	if count >= rules.MaxPerOwner {
		return nil, fmt.Errorf("owner already holds %d active listings: %w", count, apperr.ErrQuotaExceeded)
	}

	// The contact phone is captured on the profile at submission time.
	if err := s.profileRepo.UpdatePhone(ctx, ident.UserID, strings.TrimSpace(req.Phone)); err != nil {
		return nil, err
	}

	property := &models.Property{
		UserID:       ident.UserID,
		Title:        strings.TrimSpace(req.Title),
		PropertyType: req.PropertyType,
		Rent:         req.Rent,
		Area:         req.Area,
		Description:  strings.TrimSpace(req.Description),
		MapLink:      strings.TrimSpace(req.MapLink),
		Status:       models.PropertyStatusPending,
	}

	if err := s.propertyRepo.Create(ctx, property); err != nil {
		return nil, err
	}

	result := &SubmitResult{Property: property}
	result.ImagesUploaded, result.ImageErr = s.uploadImages(ctx, ident.UserID, property, files, 0)

	return result, nil
}

// ResumeImages retries the image phase for an existing listing. Images are
// appended after the ones already stored, preserving the new input order.
func (s *propertyService) ResumeImages(ctx context.Context, ident Identity, propertyID string, files []ImageFile) (*SubmitResult, error) {
	if !ident.IsAuthenticated() {
		return nil, fmt.Errorf("image upload requires a signed-in owner: %w", apperr.ErrUnauthorized)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no image files provided: %w", apperr.ErrInvalidArgument)
	}

	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	if property.UserID != ident.UserID && !ident.IsAdmin() {
		return nil, fmt.Errorf("only the listing owner may upload images: %w", apperr.ErrForbidden)
	}

	existing, err := s.imageRepo.ListByPropertyID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	if len(existing)+len(files) > s.cfg.Listing.MaxImages {
		return nil, fmt.Errorf("listing already has %d of %d images: %w",
			len(existing), s.cfg.Listing.MaxImages, apperr.ErrInvalidArgument)
	}

	result := &SubmitResult{Property: property}
	result.ImagesUploaded, result.ImageErr = s.uploadImages(ctx, property.UserID, property, files, len(existing))

	return result, nil
}

// uploadImages stores files one by one, assigning display_order from the
// input position, never from completion timing. The first failure stops the
// phase; rows already written stay.
func (s *propertyService) uploadImages(ctx context.Context, ownerID string, property *models.Property, files []ImageFile, startOrder int) (int, error) {
	uploaded := 0
	for i, file := range files {
		order := startOrder + i

		objectName, imageURL, err := s.store.UploadImage(ctx, ownerID, property.ID, order, file.Name, file.Reader, file.Size)
		if err != nil {
			return uploaded, fmt.Errorf("image %d: %w: %v", order, apperr.ErrStorageFailure, err)
		}

		image := &models.PropertyImage{
			PropertyID:   property.ID,
			ImageURL:     imageURL,
			DisplayOrder: order,
		}

		if err := s.imageRepo.Create(ctx, image); err != nil {
			// The object is orphaned if this removal fails too; the
			// owner's retry overwrites nothing, it appends.
			if delErr := s.store.DeleteImage(ctx, objectName); delErr != nil {
				log.Printf("Warning: failed to remove orphaned object %s: %v", objectName, delErr)
			}
			return uploaded, fmt.Errorf("image %d: %w", order, err)
		}

		property.Images = append(property.Images, *image)
		uploaded++
	}

	return uploaded, nil
}

func (s *propertyService) Get(ctx context.Context, ident Identity, id string) (*models.Property, error) {
	property, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Unapproved listings are visible only to their owner and admins.
	if property.Status != models.PropertyStatusApproved &&
		property.UserID != ident.UserID && !ident.IsAdmin() {
		return nil, fmt.Errorf("property %s: %w", id, apperr.ErrNotFound)
	}

	return property, nil
}

func (s *propertyService) ListApproved(ctx context.Context, filter catalog.Filter) ([]models.Property, error) {
	properties, err := s.propertyRepo.ListApproved(ctx)
	if err != nil {
		return nil, err
	}

	filter.Status = ""
	filter.MatchOwnerEmail = false

	return catalog.Apply(properties, filter), nil
}

func (s *propertyService) ListMine(ctx context.Context, ident Identity) ([]models.Property, error) {
	if !ident.IsAuthenticated() {
		return nil, fmt.Errorf("listing your properties requires sign-in: %w", apperr.ErrUnauthorized)
	}

	return s.propertyRepo.ListByOwner(ctx, ident.UserID)
}

func (s *propertyService) ListAll(ctx context.Context, ident Identity, status *models.PropertyStatus, filter catalog.Filter) ([]models.Property, error) {
	if err := requireAdmin(ident); err != nil {
		return nil, err
	}

	properties, err := s.propertyRepo.ListAll(ctx, status)
	if err != nil {
		return nil, err
	}

	filter.MatchOwnerEmail = true

	return catalog.Apply(properties, filter), nil
}

// Approve moves a pending listing to approved and clears any rejection
// reason. Approving an already-approved listing is a no-op success.
func (s *propertyService) Approve(ctx context.Context, ident Identity, id string) error {
	if err := requireAdmin(ident); err != nil {
		return err
	}

	property, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if property.Status == models.PropertyStatusApproved {
		return nil
	}

	return s.propertyRepo.UpdateStatus(ctx, id, models.PropertyStatusApproved, "")
}

// Reject moves a listing to rejected. The reason is required and stored;
// retries with different text are last-write-wins.
func (s *propertyService) Reject(ctx context.Context, ident Identity, id, reason string) error {
	if err := requireAdmin(ident); err != nil {
		return err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return fmt.Errorf("a rejection reason is required: %w", apperr.ErrInvalidArgument)
	}

	if _, err := s.propertyRepo.GetByID(ctx, id); err != nil {
		return err
	}

	return s.propertyRepo.UpdateStatus(ctx, id, models.PropertyStatusRejected, reason)
}

// Delete removes a listing, its image rows and its stored objects. Reports
// that referenced the listing are kept and read as pointing at a deleted
// property.
func (s *propertyService) Delete(ctx context.Context, ident Identity, id string) error {
	if !ident.IsAuthenticated() {
		return fmt.Errorf("delete requires sign-in: %w", apperr.ErrUnauthorized)
	}

	property, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if property.UserID != ident.UserID && !ident.IsAdmin() {
		return fmt.Errorf("only the owner or an admin may delete a listing: %w", apperr.ErrForbidden)
	}

	if err := s.store.DeletePropertyImages(ctx, property.UserID, property.ID); err != nil {
		log.Printf("Warning: failed to remove stored images for property %s: %v", property.ID, err)
	}

	if err := s.imageRepo.DeleteByPropertyID(ctx, id); err != nil {
		return err
	}

	return s.propertyRepo.Delete(ctx, id)
}

func (s *propertyService) validateDraft(req SubmitRequest) error {
	rules := s.cfg.Listing

	if strings.TrimSpace(req.Title) == "" {
		return fmt.Errorf("title is required: %w", apperr.ErrInvalidArgument)
	}
	if !rules.ValidPropertyType(req.PropertyType) {
		return fmt.Errorf("unknown property type %q: %w", req.PropertyType, apperr.ErrInvalidArgument)
	}
	if !rules.ValidArea(req.Area) {
		return fmt.Errorf("unknown area %q: %w", req.Area, apperr.ErrInvalidArgument)
	}
	if req.Rent <= 0 {
		return fmt.Errorf("rent must be positive: %w", apperr.ErrInvalidArgument)
	}
	if strings.TrimSpace(req.Phone) == "" {
		return fmt.Errorf("contact phone is required: %w", apperr.ErrInvalidArgument)
	}

	return nil
}

// requireAdmin is the shared admin gate: anonymous callers get Unauthorized,
// signed-in non-admins get Forbidden.
func requireAdmin(ident Identity) error {
	if !ident.IsAuthenticated() {
		return fmt.Errorf("admin operation without identity: %w", apperr.ErrUnauthorized)
	}
	if !ident.IsAdmin() {
		return fmt.Errorf("admin role required: %w", apperr.ErrForbidden)
	}
	return nil
}
