package models

import (
	"time"
)

type PropertyStatus string

const (
	PropertyStatusPending  PropertyStatus = "pending"
	PropertyStatusApproved PropertyStatus = "approved"
	PropertyStatusRejected PropertyStatus = "rejected"
)

type ReportStatus string

const (
	ReportStatusOpen     ReportStatus = "open"
	ReportStatusReviewed ReportStatus = "reviewed"
	ReportStatusResolved ReportStatus = "resolved"
)

type Role string

const (
	RoleAnonymous Role = "anonymous"
	RoleOwner     Role = "owner"
	RoleAdmin     Role = "admin"
)

// Profile is the per-user record; its ID doubles as the auth identity.
type Profile struct {
	ID                     string    `json:"id" db:"id"`
	Email                  string    `json:"email" db:"email"`
	PasswordHash           string    `json:"-" db:"password_hash"`
	FullName               string    `json:"fullName" db:"full_name"`
	Phone                  string    `json:"phone" db:"phone"`
	IsBlocked              bool      `json:"isBlocked" db:"is_blocked"`
	RefreshToken           string    `json:"-" db:"refresh_token"`
	RefreshTokenExpiryTime time.Time `json:"-" db:"refresh_token_expiry_time"`
	CreatedAt              time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt              time.Time `json:"updatedAt" db:"updated_at"`
}

type Property struct {
	ID              string         `json:"id" db:"id"`
	UserID          string         `json:"userId" db:"user_id"`
	Title           string         `json:"title" db:"title"`
	PropertyType    string         `json:"propertyType" db:"property_type"`
	Rent            int            `json:"rent" db:"rent"`
	Area            string         `json:"area" db:"area"`
	Description     string         `json:"description" db:"description"`
	MapLink         string         `json:"mapLink" db:"map_link"`
	Status          PropertyStatus `json:"status" db:"status"`
	RejectionReason string         `json:"rejectionReason" db:"rejection_reason"`
	CreatedAt       time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time      `json:"updatedAt" db:"updated_at"`

	// Joined data, stitched in the repository.
	Images  []PropertyImage `json:"images" db:"-"`
	Profile *Profile        `json:"profile,omitempty" db:"-"`
}

type PropertyImage struct {
	ID           string    `json:"id" db:"id"`
	PropertyID   string    `json:"propertyId" db:"property_id"`
	ImageURL     string    `json:"imageUrl" db:"image_url"`
	DisplayOrder int       `json:"displayOrder" db:"display_order"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

type Report struct {
	ID            string       `json:"id" db:"id"`
	PropertyID    string       `json:"propertyId" db:"property_id"`
	ReporterEmail string       `json:"reporterEmail" db:"reporter_email"`
	Reason        string       `json:"reason" db:"reason"`
	Status        ReportStatus `json:"status" db:"status"`
	AdminNotes    string       `json:"adminNotes" db:"admin_notes"`
	CreatedAt     time.Time    `json:"createdAt" db:"created_at"`
	ResolvedAt    *time.Time   `json:"resolvedAt" db:"resolved_at"`

	// Joined data; nil when the target listing has been deleted.
	Property *Property `json:"property,omitempty" db:"-"`
}

type BlockedContact struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone" db:"phone"`
	Reason    string    `json:"reason" db:"reason"`
	BlockedBy string    `json:"blockedBy" db:"blocked_by"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type Service struct {
	ID           string    `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description" db:"description"`
	Price        int       `json:"price" db:"price"`
	ImageURL     string    `json:"imageUrl" db:"image_url"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	DisplayOrder int       `json:"displayOrder" db:"display_order"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

type ServiceRequest struct {
	ID         string    `json:"id" db:"id"`
	ServiceID  string    `json:"serviceId" db:"service_id"`
	UserID     string    `json:"userId" db:"user_id"`
	Name       string    `json:"name" db:"name"`
	Email      string    `json:"email" db:"email"`
	Phone      string    `json:"phone" db:"phone"`
	Address    string    `json:"address" db:"address"`
	Message    string    `json:"message" db:"message"`
	Status     string    `json:"status" db:"status"`
	AdminNotes string    `json:"adminNotes" db:"admin_notes"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`

	Service *Service `json:"service,omitempty" db:"-"`
}

// SponsorSettings is a singleton payment-configuration record. Static display
// data only; there is no payment processing behind it.
type SponsorSettings struct {
	ID                string    `json:"id" db:"id"`
	QRCodeURL         string    `json:"qrCodeUrl" db:"qr_code_url"`
	BankName          string    `json:"bankName" db:"bank_name"`
	AccountHolderName string    `json:"accountHolderName" db:"account_holder_name"`
	AccountNumber     string    `json:"accountNumber" db:"account_number"`
	IFSCCode          string    `json:"ifscCode" db:"ifsc_code"`
	UPIID             string    `json:"upiId" db:"upi_id"`
	Message           string    `json:"message" db:"message"`
	UpdatedBy         string    `json:"updatedBy" db:"updated_by"`
	UpdatedAt         time.Time `json:"updatedAt" db:"updated_at"`
}

type AdminStats struct {
	TotalListings    int `json:"totalListings"`
	PendingApprovals int `json:"pendingApprovals"`
	ActiveListings   int `json:"activeListings"`
	TotalReports     int `json:"totalReports"`
	OpenReports      int `json:"openReports"`
	BlockedContacts  int `json:"blockedContacts"`
}
