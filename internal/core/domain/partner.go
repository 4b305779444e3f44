package domain

import "time"

type OnboardingStatus string

const (
	OnboardingPending     OnboardingStatus = "pending"
	OnboardingProfile     OnboardingStatus = "profile"
	OnboardingDocuments   OnboardingStatus = "documents"
	OnboardingBankDetails OnboardingStatus = "bank_details"
	OnboardingReview      OnboardingStatus = "review"
	OnboardingCompleted   OnboardingStatus = "completed"
	OnboardingRejected    OnboardingStatus = "rejected"
)

type Partner struct {
	ID                 string           `json:"id"`
	Phone              string           `json:"phone"`
	Name               string           `json:"name"`
	Email              string           `json:"email"`
	Avatar             string           `json:"avatar"`
	IsPhoneVerified    bool             `json:"isPhoneVerified"`
	IsApproved         bool             `json:"isApproved"`
	OnboardingStatus   OnboardingStatus `json:"onboardingStatus"`
	OnboardingProgress int              `json:"onboardingProgress"`
	Rating             float64          `json:"rating"`
	TotalOrders        int              `json:"totalOrders"`
	CompletedOrders    int              `json:"completedOrders"`
	IsActive           bool             `json:"isActive"`
	VehicleType        string           `json:"vehicleType"`
	VehicleNumber      string           `json:"vehicleNumber"`
	UPIID              string           `json:"upiId"`
}

type Documents struct {
	AadhaarNumber        string `json:"aadhaarNumber,omitempty"`
	PANNumber            string `json:"panNumber,omitempty"`
	AadhaarPhoto         string `json:"aadhaarPhoto,omitempty"`
	PANPhoto             string `json:"panPhoto,omitempty"`
	VehicleType          string `json:"vehicleType,omitempty"`
	VehicleNumber        string `json:"vehicleNumber,omitempty"`
	RCPhoto              string `json:"rcPhoto,omitempty"`
	DrivingLicenseNumber string `json:"drivingLicenseNumber,omitempty"`
	DrivingLicensePhoto  string `json:"drivingLicensePhoto,omitempty"`
	ProfilePhoto         string `json:"profilePhoto,omitempty"`
}

type BankDetails struct {
	AccountName   string `json:"bankAccountName"`
	AccountNumber string `json:"bankAccountNumber"`
	IFSC          string `json:"bankIFSC"`
	AccountPhoto  string `json:"bankAccountPhoto,omitempty"`
	UPIID         string `json:"upiId,omitempty"`
}

// Session is the authenticated state returned by OTP verification. The
// token is persisted locally and attached to every backend call.
type Session struct {
	DeliveryPartnerID  string           `json:"deliveryPartnerId"`
	Token              string           `json:"token"`
	OnboardingStatus   OnboardingStatus `json:"onboardingStatus"`
	OnboardingProgress int              `json:"onboardingProgress"`
	IsApproved         bool             `json:"isApproved"`
	ProfileComplete    bool             `json:"profileComplete"`
}

type OTPChallenge struct {
	Phone     string `json:"phone"`
	ExpiresIn int    `json:"expiresIn"`
	// OTP is echoed back by non-production backends for testing.
	OTP string `json:"otp,omitempty"`
}

type EarningsPeriod string

const (
	EarningsToday EarningsPeriod = "today"
	EarningsWeek  EarningsPeriod = "week"
	EarningsMonth EarningsPeriod = "month"
)

type EarningsSummary struct {
	Today float64 `json:"today"`
	Week  float64 `json:"week"`
	Month float64 `json:"month"`
}

type DashboardStats struct {
	DeliveriesToday int `json:"deliveriesToday"`
	ShiftsCompleted int `json:"shiftsCompleted"`
	ActiveOrders    int `json:"activeOrders"`
}

type Dashboard struct {
	Earnings     EarningsSummary `json:"earnings"`
	Stats        DashboardStats  `json:"stats"`
	OnlineStatus bool            `json:"onlineStatus"`
}

type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
