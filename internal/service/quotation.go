package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Demianms/MuseosApp/internal/clock"
	"github.com/Demianms/MuseosApp/internal/domain"
	"github.com/Demianms/MuseosApp/internal/pricing"
	"github.com/Demianms/MuseosApp/internal/repository"
)

var (
	ErrDraftNotFound        = domain.ErrDraftNotFound
	ErrGroupNotFound        = domain.ErrGroupNotFound
	ErrDiscountNotAvailable = domain.ErrDiscountNotAvailable
	ErrIncompleteQuotation  = domain.ErrIncompleteQuotation
	ErrEmptyQuotationID     = domain.ErrEmptyQuotationID
	ErrQuotationNotFound    = repository.ErrQuotationNotFound
	ErrQuotationExists      = repository.ErrQuotationExists
)

// ResetMuseumID deselects the museum and resets the whole draft.
const ResetMuseumID = -1

type QuotationRepository interface {
	Create(ctx context.Context, req domain.QuotationRequest) (domain.QuotationResponse, error)
	FindByUniqueID(ctx context.Context, uniqueID string) (domain.QuotationResponse, error)
	Record(ctx context.Context, q domain.Quotation, museumName string) (domain.QuotationRecord, error)
	History(ctx context.Context, limit int) ([]domain.QuotationRecord, error)
}

// Draft is a quotation draft together with its totals, computed from the
// draft's current inputs every time it is read.
type Draft struct {
	domain.QuotationDraft
	Totals pricing.Result
}

type UpdateGroupInput struct {
	Count         *string
	DiscountID    *int
	ClearDiscount bool
}

type QuotationService struct {
	museums    MuseumRepository
	quotations QuotationRepository
	clock      clock.Clock

	mu     sync.Mutex
	drafts map[string]*domain.QuotationDraft
}

func NewQuotationService(museums MuseumRepository, quotations QuotationRepository, clk clock.Clock) *QuotationService {
	return &QuotationService{
		museums:    museums,
		quotations: quotations,
		clock:      clk,
		drafts:     make(map[string]*domain.QuotationDraft),
	}
}

func newGroup(discount *domain.Discount) domain.DiscountedPeopleGroup {
	return domain.DiscountedPeopleGroup{
		ID:       uuid.NewString(),
		Discount: discount,
	}
}

// resetDraft puts d back into its initial state with a single empty group.
func (s *QuotationService) resetDraft(d *domain.QuotationDraft) {
	d.Museum = nil
	d.AppointmentDate = ""
	d.StartHour = ""
	d.EndHour = ""
	d.General = "0"
	d.Infants = "0"
	d.Groups = []domain.DiscountedPeopleGroup{newGroup(nil)}
	d.Quotation = nil
	d.WasSearched = false
	d.UpdatedAt = s.clock.Now()
}

// seedGroups adds the initial discount group after a museum is selected,
// preset to the full INAPAM waiver when the museum offers one.
func seedGroups(d *domain.QuotationDraft) {
	if len(d.Groups) > 0 {
		return
	}

	var waiver *domain.Discount
	for _, disc := range d.AvailableDiscounts() {
		if disc.IsSeniorWaiver() {
			disc := disc
			waiver = &disc
			break
		}
	}

	g := newGroup(waiver)
	g.Count = "0"
	d.Groups = append(d.Groups, g)
}

func (s *QuotationService) view(d *domain.QuotationDraft) Draft {
	return Draft{
		QuotationDraft: d.Clone(),
		Totals:         pricing.Calculate(d.PricingInput()),
	}
}

// edit runs fn on the draft under the lock and returns the resulting view.
func (s *QuotationService) edit(draftID string, fn func(d *domain.QuotationDraft) error) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[draftID]
	if !ok {
		return Draft{}, ErrDraftNotFound
	}
	if err := fn(d); err != nil {
		return Draft{}, err
	}
	d.UpdatedAt = s.clock.Now()

	return s.view(d), nil
}

// CreateDraft starts a new draft. When museumID is given the museum is
// selected right away; if that fails the draft is discarded.
func (s *QuotationService) CreateDraft(ctx context.Context, museumID *int) (Draft, error) {
	now := s.clock.Now()
	d := &domain.QuotationDraft{
		ID:        uuid.NewString(),
		CreatedAt: now,
	}
	s.resetDraft(d)

	s.mu.Lock()
	s.drafts[d.ID] = d
	view := s.view(d)
	s.mu.Unlock()

	if museumID == nil || *museumID == ResetMuseumID {
		return view, nil
	}

	view, err := s.SelectMuseum(ctx, d.ID, *museumID)
	if err != nil {
		s.mu.Lock()
		delete(s.drafts, d.ID)
		s.mu.Unlock()
		return Draft{}, err
	}

	return view, nil
}

func (s *QuotationService) GetDraft(draftID string) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[draftID]
	if !ok {
		return Draft{}, ErrDraftNotFound
	}

	view := s.view(d)
	logBreakdown(d.ID, view.Totals, d.BasePrice())

	return view, nil
}

// SelectMuseum loads the museum and makes it the draft's museum, replacing
// the discount groups with a freshly seeded one. Selecting the current
// museum again changes nothing; ResetMuseumID resets the draft.
func (s *QuotationService) SelectMuseum(ctx context.Context, draftID string, museumID int) (Draft, error) {
	if museumID == ResetMuseumID {
		return s.Clear(draftID)
	}

	s.mu.Lock()
	d, ok := s.drafts[draftID]
	if !ok {
		s.mu.Unlock()
		return Draft{}, ErrDraftNotFound
	}
	if d.MuseumID() == museumID {
		view := s.view(d)
		s.mu.Unlock()
		return view, nil
	}
	s.mu.Unlock()

	museum, fetchErr := s.museums.FindMuseumByID(ctx, museumID)

	return s.edit(draftID, func(d *domain.QuotationDraft) error {
		d.Museum = nil
		d.Groups = nil
		if fetchErr != nil {
			d.Groups = []domain.DiscountedPeopleGroup{newGroup(nil)}
			return fmt.Errorf("s.museums.FindMuseumByID -> %w", fetchErr)
		}

		d.Museum = &museum
		seedGroups(d)
		return nil
	})
}

func (s *QuotationService) SetSchedule(draftID, date, startHour, endHour string) (Draft, error) {
	return s.edit(draftID, func(d *domain.QuotationDraft) error {
		d.AppointmentDate = date
		d.StartHour = startHour
		d.EndHour = endHour
		return nil
	})
}

// SetCounts stores the head-count text as typed; it is parsed only when
// totals are computed.
func (s *QuotationService) SetCounts(draftID, general, infants string) (Draft, error) {
	return s.edit(draftID, func(d *domain.QuotationDraft) error {
		d.General = general
		d.Infants = infants
		return nil
	})
}

func (s *QuotationService) AddGroup(draftID string) (Draft, error) {
	return s.edit(draftID, func(d *domain.QuotationDraft) error {
		d.Groups = append(d.Groups, newGroup(nil))
		return nil
	})
}

// RemoveGroup removes a discount group. The list is never left empty: when
// the last group goes a new empty one takes its place.
func (s *QuotationService) RemoveGroup(draftID, groupID string) (Draft, error) {
	return s.edit(draftID, func(d *domain.QuotationDraft) error {
		i := d.FindGroup(groupID)
		if i < 0 {
			return ErrGroupNotFound
		}

		d.Groups = append(d.Groups[:i], d.Groups[i+1:]...)
		if len(d.Groups) == 0 {
			d.Groups = append(d.Groups, newGroup(nil))
		}
		return nil
	})
}

func (s *QuotationService) UpdateGroup(draftID, groupID string, in UpdateGroupInput) (Draft, error) {
	return s.edit(draftID, func(d *domain.QuotationDraft) error {
		i := d.FindGroup(groupID)
		if i < 0 {
			return ErrGroupNotFound
		}

		g := d.Groups[i]
		if in.Count != nil {
			g.Count = *in.Count
		}
		switch {
		case in.ClearDiscount:
			g.Discount = nil
		case in.DiscountID != nil:
			if d.Museum == nil {
				return ErrDiscountNotAvailable
			}
			disc, ok := d.Museum.FindDiscount(*in.DiscountID)
			if !ok {
				return ErrDiscountNotAvailable
			}
			g.Discount = &disc
		}
		d.Groups[i] = g

		return nil
	})
}

// Submit sends the draft to the backend as a new quotation. The draft must
// have a museum, a date, both hours and at least one person. If the draft is
// deleted while the backend call is in flight, the created quotation is still
// returned on a detached view of the submitted draft.
func (s *QuotationService) Submit(ctx context.Context, draftID string) (Draft, error) {
	s.mu.Lock()
	d, ok := s.drafts[draftID]
	if !ok {
		s.mu.Unlock()
		return Draft{}, ErrDraftNotFound
	}
	d.Quotation = nil
	d.WasSearched = false

	req, err := buildRequest(d)
	snapshot := d.Clone()
	s.mu.Unlock()
	if err != nil {
		return Draft{}, err
	}

	var museumName string
	if snapshot.Museum != nil {
		museumName = snapshot.Museum.Name
	}

	resp, err := s.quotations.Create(ctx, req)
	if err != nil {
		return Draft{}, fmt.Errorf("s.quotations.Create -> %w", err)
	}

	s.record(ctx, req, resp, museumName)

	view, err := s.edit(draftID, func(d *domain.QuotationDraft) error {
		d.Quotation = &resp
		d.WasSearched = false
		return nil
	})
	if errors.Is(err, ErrDraftNotFound) {
		zap.L().Warn("draft deleted during submit",
			zap.String("draft_id", draftID),
			zap.String("unique_id", resp.UniqueID),
		)
		snapshot.Quotation = &resp
		return s.view(&snapshot), nil
	}

	return view, err
}

func buildRequest(d *domain.QuotationDraft) (domain.QuotationRequest, error) {
	in := d.PricingInput()
	totals := pricing.Calculate(in)

	if d.Museum == nil ||
		strings.TrimSpace(d.AppointmentDate) == "" ||
		strings.TrimSpace(d.StartHour) == "" ||
		strings.TrimSpace(d.EndHour) == "" ||
		totals.TotalPeople <= 0 {
		return domain.QuotationRequest{}, ErrIncompleteQuotation
	}

	summary := pricing.Summarize(in)
	logBreakdown(d.ID, totals, in.BasePrice)

	return domain.QuotationRequest{
		MuseumID:                   d.Museum.ID,
		AppointmentDate:            d.AppointmentDate,
		StartHour:                  d.StartHour,
		EndHour:                    d.EndHour,
		TotalPeople:                totals.TotalPeople,
		TotalPeopleDiscount:        summary.PeopleWithDiscount,
		TotalPeopleWithoutDiscount: summary.PeopleWithoutDiscount,
		TotalInfants:               totals.Infants,
		TotalWithDiscount:          summary.TotalWithDiscount,
		TotalWithoutDiscount:       summary.TotalWithoutDiscount,
		PriceTotal:                 totals.TotalPrice,
	}, nil
}

// record keeps a local copy of a created quotation. Failures are logged
// and do not fail the submission.
func (s *QuotationService) record(ctx context.Context, req domain.QuotationRequest, resp domain.QuotationResponse, museumName string) {
	uniqueID := resp.Effective().UniqueID
	if uniqueID == "" {
		zap.L().Warn("backend returned a quotation without unique id", zap.Int("museum_id", req.MuseumID))
		return
	}

	_, err := s.quotations.Record(ctx, domain.Quotation{
		UniqueID:                   uniqueID,
		MuseumID:                   req.MuseumID,
		AppointmentDate:            req.AppointmentDate,
		StartHour:                  req.StartHour,
		EndHour:                    req.EndHour,
		TotalPeople:                req.TotalPeople,
		TotalPeopleDiscount:        req.TotalPeopleDiscount,
		TotalPeopleWithoutDiscount: req.TotalPeopleWithoutDiscount,
		TotalInfants:               req.TotalInfants,
		TotalWithDiscount:          req.TotalWithDiscount,
		TotalWithoutDiscount:       req.TotalWithoutDiscount,
		PriceTotal:                 req.PriceTotal,
	}, museumName)
	if err != nil {
		level := zap.ErrorLevel
		if errors.Is(err, ErrQuotationExists) {
			level = zap.WarnLevel
		}
		zap.L().Log(level, "failed to record quotation",
			zap.String("unique_id", uniqueID),
			zap.Error(err),
		)
	}
}

// Search looks a quotation up by its unique id. When draftID is not empty
// any previous result on that draft is dropped first, then the new result is
// stored on it and flagged as searched.
func (s *QuotationService) Search(ctx context.Context, uniqueID, draftID string) (domain.Quotation, error) {
	if draftID != "" {
		if _, err := s.ClearSearch(draftID); err != nil {
			return domain.Quotation{}, err
		}
	}

	uniqueID = strings.TrimSpace(uniqueID)
	if uniqueID == "" {
		return domain.Quotation{}, ErrEmptyQuotationID
	}

	resp, err := s.quotations.FindByUniqueID(ctx, uniqueID)
	if err != nil {
		return domain.Quotation{}, fmt.Errorf("s.quotations.FindByUniqueID -> %w", err)
	}

	if draftID != "" {
		if _, err = s.edit(draftID, func(d *domain.QuotationDraft) error {
			d.Quotation = &resp
			d.WasSearched = true
			return nil
		}); err != nil {
			return domain.Quotation{}, err
		}
	}

	return resp.Effective(), nil
}

// Clear resets the draft to its initial state with one empty group.
func (s *QuotationService) Clear(draftID string) (Draft, error) {
	return s.edit(draftID, func(d *domain.QuotationDraft) error {
		s.resetDraft(d)
		return nil
	})
}

// ClearSearch drops the stored quotation and the searched flag only.
func (s *QuotationService) ClearSearch(draftID string) (Draft, error) {
	return s.edit(draftID, func(d *domain.QuotationDraft) error {
		d.Quotation = nil
		d.WasSearched = false
		return nil
	})
}

func (s *QuotationService) DeleteDraft(draftID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.drafts[draftID]; !ok {
		return ErrDraftNotFound
	}
	delete(s.drafts, draftID)

	return nil
}

func (s *QuotationService) History(ctx context.Context, limit int) ([]domain.QuotationRecord, error) {
	records, err := s.quotations.History(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("s.quotations.History -> %w", err)
	}

	return records, nil
}

func logBreakdown(draftID string, totals pricing.Result, basePrice float64) {
	log := zap.L()
	if !log.Core().Enabled(zap.DebugLevel) {
		return
	}

	log.Debug("quotation general line",
		zap.String("draft_id", draftID),
		zap.Float64("base_price", basePrice),
		zap.Int("people", totals.General.People),
		zap.Stringer("amount", totals.General.Amount),
	)
	for i, g := range totals.Groups {
		log.Debug("quotation group line",
			zap.String("draft_id", draftID),
			zap.Int("group", i+1),
			zap.Int("people", g.People),
			zap.Float64("discount", g.Discount),
			zap.Stringer("amount", g.Amount),
		)
	}
	log.Debug("quotation total",
		zap.String("draft_id", draftID),
		zap.Int("total_people", totals.TotalPeople),
		zap.Stringer("total_price", totals.TotalPrice),
	)
}
