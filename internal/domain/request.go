package domain

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type RequestType string

const (
	RequestArticleApproval    RequestType = "article_approval"
	RequestProductApproval    RequestType = "product_approval"
	RequestUserRegistration   RequestType = "user_registration"
	RequestAppointmentBooking RequestType = "appointment_booking"
	RequestFreeConsultation   RequestType = "free_consultation"
	RequestContactUsInquiry   RequestType = "contact_us_inquiry"
)

func (t RequestType) IsValid() bool {
	switch t {
	case RequestArticleApproval, RequestProductApproval, RequestUserRegistration,
		RequestAppointmentBooking, RequestFreeConsultation, RequestContactUsInquiry:
		return true
	default:
		return false
	}
}

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// IsReviewOutcome reports whether s can be the result of processing a request.
func (s RequestStatus) IsReviewOutcome() bool {
	return s == RequestApproved || s == RequestRejected
}

type Request struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	Type          RequestType     `json:"type" db:"type"`
	Data          RequestPayload  `json:"data" db:"-"`
	RawData       json.RawMessage `json:"-" db:"data"`
	Status        RequestStatus   `json:"status" db:"status"`
	SubmittedByID *uuid.UUID      `json:"submittedById,omitempty" db:"submitted_by"`
	ReviewedByID  *uuid.UUID      `json:"reviewedById,omitempty" db:"reviewed_by"`
	ReviewNotes   *string         `json:"reviewNotes,omitempty" db:"review_notes"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time       `json:"updatedAt" db:"updated_at"`

	SubmittedBy *UserSummary `json:"submittedBy,omitempty" db:"-"`
	ReviewedBy  *UserSummary `json:"reviewedBy,omitempty" db:"-"`
}

// DecodeData rebuilds the typed payload from the stored document.
func (r *Request) DecodeData() error {
	payload, err := DecodeRequestPayload(r.Type, r.RawData)
	if err != nil {
		return err
	}
	r.Data = payload
	return nil
}

// EncodeData serialises the typed payload for storage.
func (r *Request) EncodeData() error {
	raw, err := json.Marshal(r.Data)
	if err != nil {
		return err
	}
	r.RawData = raw
	return nil
}

type RequestFilter struct {
	Status      *RequestStatus
	SubmittedBy *uuid.UUID
}

type CreateRequestInput struct {
	Type RequestType     `json:"type"`
	Data json.RawMessage `json:"data"`
}

type ProcessRequestInput struct {
	Status      RequestStatus `json:"status"`
	ReviewNotes *string       `json:"reviewNotes,omitempty"`
}

type BulkProcessInput struct {
	RequestIDs  []string      `json:"requestIds"`
	Status      RequestStatus `json:"status"`
	ReviewNotes *string       `json:"reviewNotes,omitempty"`
}

type BulkProcessResult struct {
	Count             int         `json:"count"`
	ProcessedRequests []uuid.UUID `json:"processedRequests"`
}

// RequestPayload is the closed set of request data variants, one per RequestType.
type RequestPayload interface {
	RequestType() RequestType
	isRequestPayload()
}

type ArticleApprovalPayload struct {
	ArticleID uuid.UUID `json:"articleId"`
	Title     string    `json:"title"`
}

type ProductApprovalPayload struct {
	ProductID *uuid.UUID `json:"productId,omitempty"`
	Name      string     `json:"name,omitempty"`
	Notes     string     `json:"notes,omitempty"`
}

type UserRegistrationPayload struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type AppointmentBookingPayload struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Service string `json:"service,omitempty"`
	Doctor  string `json:"doctor,omitempty"`
	Date    string `json:"date,omitempty"`
	Time    string `json:"time,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

type FreeConsultationPayload struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Concern string `json:"concern,omitempty"`
}

type ContactUsInquiryPayload struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message,omitempty"`
}

func (ArticleApprovalPayload) RequestType() RequestType    { return RequestArticleApproval }
func (ProductApprovalPayload) RequestType() RequestType    { return RequestProductApproval }
func (UserRegistrationPayload) RequestType() RequestType   { return RequestUserRegistration }
func (AppointmentBookingPayload) RequestType() RequestType { return RequestAppointmentBooking }
func (FreeConsultationPayload) RequestType() RequestType   { return RequestFreeConsultation }
func (ContactUsInquiryPayload) RequestType() RequestType   { return RequestContactUsInquiry }

func (ArticleApprovalPayload) isRequestPayload()    {}
func (ProductApprovalPayload) isRequestPayload()    {}
func (UserRegistrationPayload) isRequestPayload()   {}
func (AppointmentBookingPayload) isRequestPayload() {}
func (FreeConsultationPayload) isRequestPayload()   {}
func (ContactUsInquiryPayload) isRequestPayload()   {}

var (
	ErrInvalidRequestType  = NewValidationError("Invalid request type")
	ErrRequestDataRequired = NewValidationError("Request data is required")
	ErrInvalidRequestData  = NewValidationError("Request data does not match its type")
	ErrArticleIDRequired   = NewValidationError("articleId is required for article_approval requests")
)

// DecodeRequestPayload parses raw into the variant selected by t.
func DecodeRequestPayload(t RequestType, raw json.RawMessage) (RequestPayload, error) {
	if !t.IsValid() {
		return nil, ErrInvalidRequestType
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, ErrRequestDataRequired
	}
	if trimmed[0] != '{' {
		return nil, ErrInvalidRequestData
	}

	switch t {
	case RequestArticleApproval:
		var p ArticleApprovalPayload
		if err := unmarshalPayload(trimmed, &p); err != nil {
			return nil, err
		}
		if p.ArticleID == uuid.Nil {
			return nil, ErrArticleIDRequired
		}
		return p, nil
	case RequestProductApproval:
		var p ProductApprovalPayload
		if err := unmarshalPayload(trimmed, &p); err != nil {
			return nil, err
		}
		return p, nil
	case RequestUserRegistration:
		var p UserRegistrationPayload
		if err := unmarshalPayload(trimmed, &p); err != nil {
			return nil, err
		}
		return p, nil
	case RequestAppointmentBooking:
		var p AppointmentBookingPayload
		if err := unmarshalPayload(trimmed, &p); err != nil {
			return nil, err
		}
		return p, nil
	case RequestFreeConsultation:
		var p FreeConsultationPayload
		if err := unmarshalPayload(trimmed, &p); err != nil {
			return nil, err
		}
		return p, nil
	default:
		var p ContactUsInquiryPayload
		if err := unmarshalPayload(trimmed, &p); err != nil {
			return nil, err
		}
		return p, nil
	}
}

// unmarshalPayload rejects keys the variant does not declare, so client data
// is never stored with fields silently dropped.
func unmarshalPayload(raw []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return ErrInvalidRequestData
	}
	if dec.More() {
		return ErrInvalidRequestData
	}
	return nil
}
