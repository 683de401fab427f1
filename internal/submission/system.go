package submission

import (
	"context"

	"github.com/google/uuid"

	"github.com/submitez/submitez/pkg/pagination"
)

// CreateCommand carries the broker-supplied metadata for a new submission.
type CreateCommand struct {
	BrokerName             string `json:"broker_name,omitempty"`
	BrokerEmail            string `json:"broker_email,omitempty"`
	CarrierName            string `json:"carrier_name,omitempty"`
	EffectiveDateRequested string `json:"effective_date_requested,omitempty"`
	Notes                  string `json:"notes,omitempty"`
}

// System defines the public contract for submission domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Submission], error)

	Find(ctx context.Context, id uuid.UUID) (*Submission, error)
	Create(ctx context.Context, cmd CreateCommand) (*Submission, error)
	Save(ctx context.Context, sub *Submission) (*Submission, error)
	Transition(ctx context.Context, id uuid.UUID, next Status) (*Submission, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
