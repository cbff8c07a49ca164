package audit

import (
	"time"

	"github.com/google/uuid"

	"carbonledger/pkg/domain"
)

// Event is one ledger state transition as seen by external observers. Fields
// carry everything needed to reconstruct the transition without re-querying
// state, rendered as strings so every sink encodes them the same way.
type Event struct {
	ID        uuid.UUID         `json:"id"`
	Name      EventName         `json:"event"`
	Timestamp time.Time         `json:"timestamp"`
	Actor     domain.Address    `json:"actor,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
	Fields    map[string]string `json:"fields"`
}

type EventName string

const (
	EventProjectCreated       EventName = "project_created"
	EventProjectVerified      EventName = "project_verified"
	EventCreditsIssued        EventName = "credits_issued"
	EventCreditsRetired       EventName = "credits_retired"
	EventListingCreated       EventName = "listing_created"
	EventListingCancelled     EventName = "listing_cancelled"
	EventCreditsPurchased     EventName = "credits_purchased"
	EventFeeUpdated           EventName = "fee_updated"
	EventFeeCollectorUpdated  EventName = "fee_collector_updated"
	EventCertifierAuthorized  EventName = "certifier_authorized"
	EventCertifierRevoked     EventName = "certifier_revoked"
	EventCertificationAdded   EventName = "certification_added"
	EventOwnershipTransferred EventName = "ownership_transferred"
	EventRoleGranted          EventName = "role_granted"
	EventRoleRevoked          EventName = "role_revoked"
)
