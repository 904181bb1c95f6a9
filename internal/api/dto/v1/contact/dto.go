package contact

// ContactRequest represents a contact form submission.
// A missing captcha token is reported before any other field.
type ContactRequest struct {
	FirstName    string `json:"firstName" validate:"notblank,max=100"`
	LastName     string `json:"lastName" validate:"notblank,max=100"`
	Email        string `json:"email" validate:"notblank,emailshape,max=255"`
	Phone        string `json:"phone" validate:"notblank,max=40"`
	Message      string `json:"message" validate:"notblank,max=5000"`
	CaptchaToken string `json:"captchaToken" validate:"notblank"`
}
