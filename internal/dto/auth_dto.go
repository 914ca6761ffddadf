package dto

// LoginRequest is the shared credential payload for admin, coordinator and
// student logins.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued token and the authenticated identity.
type LoginResponse struct {
	Token    string          `json:"token"`
	Role     string          `json:"role"`
	Username string          `json:"username"`
	Student  *StudentProfile `json:"student,omitempty"`
}

// ResetPasswordRequest resets a student password after verifying the
// account phone.
type ResetPasswordRequest struct {
	Username    string `json:"username" validate:"required"`
	Phone       string `json:"phone" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=128"`
}

// StudentProfile is the student identity payload returned by login and
// registration.
type StudentProfile struct {
	ID                uint   `json:"id"`
	Username          string `json:"username"`
	FullNameAmharic   string `json:"full_name_amharic"`
	FullNameEnglish   string `json:"full_name_english"`
	Gender            string `json:"gender"`
	LocalChurch       string `json:"local_church"`
	Address           string `json:"address"`
	Phone             string `json:"phone"`
	Status            string `json:"status"`
	ProfileComplete   bool   `json:"profile_complete"`
	HasIDDocument     bool   `json:"has_id_document"`
	HasRecommendation bool   `json:"has_recommendation"`
	HasEssay          bool   `json:"has_essay"`
	HasPhoto          bool   `json:"has_photo"`
	AppointmentID     *uint  `json:"appointment_id,omitempty"`
	CheckInCode       string `json:"check_in_code,omitempty"`
}
