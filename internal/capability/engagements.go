package capability

import (
	"context"

	"github.com/fieldlens/concierge/domain"
	"github.com/fieldlens/concierge/internal/dataset"
)

// Engagements reports the most recent recorded interaction for a doctor,
// including the business contacts made around it.
type Engagements struct {
	data *dataset.Dataset
}

var _ Capability = (*Engagements)(nil)

func NewEngagements(data *dataset.Dataset) *Engagements { return &Engagements{data: data} }

func (e *Engagements) Name() string { return "engagements.lookup" }

func (e *Engagements) Description() string {
	return "Look up the latest engagement for a doctor: outcome, talking points, and business contacts made."
}

func (e *Engagements) Params() map[string]any { return doctorParam() }

func (e *Engagements) Invoke(_ context.Context, args map[string]any) (domain.Payload, error) {
	doctor := stringArg(args, "doctor_name")
	if doctor == "" {
		return nil, domain.ErrValidation
	}

	latest, ok := e.data.LatestEngagementFor(doctor)
	if !ok {
		return domain.EngagementInfo{Doctor: doctor, NoData: true}, nil
	}

	return domain.EngagementInfo{
		Doctor:        latest.Doctor,
		LastDate:      latest.Date,
		Type:          latest.Type,
		Outcome:       latest.Outcome,
		TalkingPoints: latest.TalkingPoints,
		ContactsMade:  latest.ContactsMade,
	}, nil
}
