package model

import "time"

type ApprovalStatus int

const (
	ApprovalStatusWaiting  ApprovalStatus = 1
	ApprovalStatusApproved ApprovalStatus = 2
	ApprovalStatusDenied   ApprovalStatus = 3
)

// DocumentTitleProtocol marks a document as a completion protocol.
const DocumentTitleProtocol = "Slutprotokoll"

// StepState tracks a property owner's onboarding progress.
type StepState struct {
	Current int                `json:"current"`
	History map[string]*string `json:"history"`
}

// Party is a named party with contact details (property owner side).
type Party struct {
	Name    string    `json:"name"`
	Address string    `json:"address"`
	Zip     string    `json:"zip"`
	Town    string    `json:"town"`
	Phone   string    `json:"phone,omitempty"`
	Email   string    `json:"email,omitempty"`
	State   StepState `json:"state"`
}

type Property struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Zip     string `json:"zip"`
	Town    string `json:"town"`
	MapURL  string `json:"mapUrl,omitempty"`
}

// WinningTender is the accepted contractor bid on a tender.
type WinningTender struct {
	Name          string  `json:"name"`
	TenderPrice   float64 `json:"tenderPrice"`
	Currency      string  `json:"currency"`
	ContactPerson string  `json:"contactPerson"`
	Phone         string  `json:"phone"`
	ID            int64   `json:"id"`
}

type DamageType struct {
	Value int    `json:"value"` // 1 water, 2 fire, 3 vandalism
	Label string `json:"label"`
}

// Document is an attachment on a tender. ApprovalStatus is nil until an
// approval has been requested.
type Document struct {
	Title          string          `json:"title"`
	File           string          `json:"file,omitempty"`
	CreatedAt      string          `json:"createdAt"`
	ApprovalNeeded bool            `json:"approvalNeeded"`
	ApprovalStatus *ApprovalStatus `json:"approvalStatus"`
}

// MessageAuthor identifies who wrote a tender message.
type MessageAuthor struct {
	Name         string `json:"name"`
	ID           int64  `json:"id"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// TenderMessage is an activity-feed entry on a tender.
type TenderMessage struct {
	Author    MessageAuthor `json:"author"`
	CreatedAt time.Time     `json:"createdAt"`
	Title     string        `json:"title"`
	Message   string        `json:"message"`
}

// PhaseDates records when a tender entered each phase.
type PhaseDates struct {
	Registered       string `json:"registered,omitempty"`
	BiddingStarted   string `json:"biddingStarted,omitempty"`
	AwaitingResponse string `json:"awaitingResponse,omitempty"`
	Approved         string `json:"approved,omitempty"`
}

// Tender is an insurance-claim repair job open for contractor bidding.
type Tender struct {
	ID            int64           `json:"id"`
	PropertyOwner Party           `json:"po"`
	Property      Property        `json:"property"`
	WinningTender *WinningTender  `json:"winningTender"`
	TenderType    int             `json:"tenderType"`
	DamageType    DamageType      `json:"damageType"`
	Description   string          `json:"description"`
	File          string          `json:"file,omitempty"`
	InsurerName   string          `json:"insurerName"`
	Documents     []Document      `json:"documents"`
	Messages      []TenderMessage `json:"messages,omitempty"`
	Status        int             `json:"status"`
	StartingAt    *string         `json:"startingAt"`
	EndingAt      *string         `json:"endingAt"`
	PhaseDates    PhaseDates      `json:"phaseDates"`
}

// Protocol pairs a tender with its completion protocol document.
func (t *Tender) Protocol() *Document {
	for i := range t.Documents {
		if t.Documents[i].Title == DocumentTitleProtocol {
			return &t.Documents[i]
		}
	}
	return nil
}
