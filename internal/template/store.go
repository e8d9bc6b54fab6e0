package template

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/techtify/ensured-billing/internal/model"
)

var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrBuiltInTemplate  = errors.New("built-in templates cannot be modified")
)

// Repository persists one custom-template payload per user.
type Repository interface {
	LoadPayload(ctx context.Context, userID int64) ([]byte, error)
	SavePayload(ctx context.Context, userID int64, payload []byte) error
}

// Store merges the built-in MEPS catalog with per-user custom templates.
// Persistence is best effort: a failed or corrupt read falls back to the
// built-ins alone, and a failed write is swallowed.
type Store struct {
	repo Repository
	log  zerolog.Logger
}

func NewStore(repo Repository, log zerolog.Logger) *Store {
	return &Store{repo: repo, log: log}
}

// Load returns the merged template set for a user. Built-ins come first and
// win ID collisions against persisted customs.
func (s *Store) Load(ctx context.Context, userID int64) []model.MomentTemplate {
	builtIn := BuiltIn()
	merged := make([]model.MomentTemplate, 0, len(builtIn))
	seen := make(map[string]struct{}, len(builtIn))
	for _, tpl := range builtIn {
		merged = append(merged, tpl)
		seen[tpl.ID] = struct{}{}
	}
	for _, tpl := range s.loadCustom(ctx, userID) {
		if _, exists := seen[tpl.ID]; exists {
			continue
		}
		seen[tpl.ID] = struct{}{}
		merged = append(merged, tpl)
	}
	return merged
}

// Create stores a new custom template for the user and returns it with its
// assigned ID. The group is forced to Custom.
func (s *Store) Create(ctx context.Context, userID int64, name string, items []model.MomentTemplateItem) (model.MomentTemplate, error) {
	if name == "" || len(items) == 0 {
		return model.MomentTemplate{}, errors.New("name and items are required")
	}
	tpl := model.MomentTemplate{
		ID:    "custom-" + uuid.NewString(),
		Name:  name,
		Group: model.TemplateGroupCustom,
		Items: items,
	}
	customs := append(s.loadCustom(ctx, userID), tpl)
	s.persist(ctx, userID, customs)
	return tpl, nil
}

// CreateFromRow saves one ledger row as a fixed-quantity custom template.
// A zero or missing quantity defaults to 1.
func (s *Store) CreateFromRow(ctx context.Context, userID int64, name string, row model.LineItem) (model.MomentTemplate, error) {
	qty := row.Qty
	if qty == 0 {
		qty = 1
	}
	return s.Create(ctx, userID, name, []model.MomentTemplateItem{
		{
			Title:     row.Title,
			Code:      row.Code,
			Unit:      row.Unit,
			UnitPrice: row.UnitPrice,
			FixedQty:  qty,
			QtyMode:   model.QtyModeFixed,
		},
	})
}

// Delete removes one custom template and re-persists the remainder.
func (s *Store) Delete(ctx context.Context, userID int64, id string) error {
	for _, tpl := range BuiltIn() {
		if tpl.ID == id {
			return ErrBuiltInTemplate
		}
	}
	customs := s.loadCustom(ctx, userID)
	kept := customs[:0]
	found := false
	for _, tpl := range customs {
		if tpl.ID == id {
			found = true
			continue
		}
		kept = append(kept, tpl)
	}
	if !found {
		return ErrTemplateNotFound
	}
	s.persist(ctx, userID, kept)
	return nil
}

func (s *Store) loadCustom(ctx context.Context, userID int64) []model.MomentTemplate {
	payload, err := s.repo.LoadPayload(ctx, userID)
	if err != nil || len(payload) == 0 {
		if err != nil {
			s.log.Debug().Err(err).Int64("user_id", userID).Msg("template payload unavailable, using built-ins")
		}
		return nil
	}
	var parsed []model.MomentTemplate
	if err := json.Unmarshal(payload, &parsed); err != nil {
		s.log.Debug().Err(err).Int64("user_id", userID).Msg("template payload corrupt, using built-ins")
		return nil
	}
	customs := parsed[:0]
	for _, tpl := range parsed {
		if tpl.Group == model.TemplateGroupCustom {
			customs = append(customs, tpl)
		}
	}
	return customs
}

// persist writes only Custom-group entries; failures are logged and ignored.
func (s *Store) persist(ctx context.Context, userID int64, templates []model.MomentTemplate) {
	customs := make([]model.MomentTemplate, 0, len(templates))
	for _, tpl := range templates {
		if tpl.Group == model.TemplateGroupCustom {
			customs = append(customs, tpl)
		}
	}
	payload, err := json.Marshal(customs)
	if err != nil {
		s.log.Debug().Err(err).Int64("user_id", userID).Msg("marshal custom templates failed")
		return
	}
	if err := s.repo.SavePayload(ctx, userID, payload); err != nil {
		s.log.Debug().Err(err).Int64("user_id", userID).Msg("persist custom templates failed")
	}
}
