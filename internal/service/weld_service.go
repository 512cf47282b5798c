package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/zaqqye/weld_backend_v1/internal/models"
	"github.com/zaqqye/weld_backend_v1/internal/repository"
)

// EventPublisher receives a WeldEvent after every successful write.
type EventPublisher interface {
	Publish(ev models.WeldEvent)
}

type nopPublisher struct{}

func (nopPublisher) Publish(models.WeldEvent) {}

type WeldService struct {
	repo   repository.WeldRepository
	events EventPublisher
	log    *zap.Logger
}

// NewWeldService wires the service. events and log may be nil.
func NewWeldService(repo repository.WeldRepository, events EventPublisher, log *zap.Logger) *WeldService {
	if events == nil {
		events = nopPublisher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &WeldService{repo: repo, events: events, log: log}
}

// Create checks in against the CreateWeldDTO binding rules, fills defaults and stores it.
func (s *WeldService) Create(ctx context.Context, in models.CreateWeldDTO) (*models.Weld, error) {
	if err := validate.Struct(in); err != nil {
		if verr := BindingError(err); verr != nil {
			return nil, verr
		}
		return nil, fmt.Errorf("validate weld: %w", err)
	}

	w := models.Weld{
		ObjectName:     in.ObjectName,
		Contractor:     in.Contractor,
		Customer:       in.Customer,
		WeldNumber:     *in.WeldNumber,
		Diameter:       *in.Diameter,
		Thickness1:     *in.Thickness1,
		Thickness2:     in.Thickness2,
		QualityLevel:   *in.QualityLevel,
		WeldDate:       in.WeldDate,
		WeldingProcess: models.ProcessSMAWGMAW,
		Joint:          models.JointButt,
		WeldStatus:     in.WeldStatus,
		TestMethods:    dedupeMethods(in.TestMethods),
		Conclusion:     in.Conclusion,
		Notes:          in.Notes,
	}
	if in.WeldingProcess != nil {
		w.WeldingProcess = *in.WeldingProcess
	}
	if in.Joint != nil {
		w.Joint = *in.Joint
	}

	if err := s.repo.CreateWeld(ctx, &w); err != nil {
		return nil, fmt.Errorf("create weld: %w", err)
	}
	s.log.Info("weld created", zap.String("id", w.ID), zap.String("weld_number", w.WeldNumber))
	s.publish(models.WeldCreated, &w)
	return &w, nil
}

// List returns matching welds newest first and the total before paging.
func (s *WeldService) List(ctx context.Context, f repository.WeldFilter) ([]models.Weld, int64, error) {
	welds, total, err := s.repo.ListWelds(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("list welds: %w", err)
	}
	if welds == nil {
		welds = []models.Weld{}
	}
	return welds, total, nil
}

func (s *WeldService) Get(ctx context.Context, id string) (*models.Weld, error) {
	w, err := s.repo.GetWeld(ctx, id)
	if err != nil {
		return nil, s.mapErr("get", id, err)
	}
	return w, nil
}

// Update applies the fields present in in. Concurrent updates are last-write-wins.
func (s *WeldService) Update(ctx context.Context, id string, in models.UpdateWeldDTO) (*models.Weld, error) {
	w, err := s.repo.GetWeld(ctx, id)
	if err != nil {
		return nil, s.mapErr("update", id, err)
	}

	previousObject := models.StringOrEmpty(w.ObjectName)
	v := &ValidationError{}
	applyRequired(v, "weldNumber", in.WeldNumber, &w.WeldNumber)
	applyRequired(v, "diameter", in.Diameter, &w.Diameter)
	applyRequired(v, "thickness1", in.Thickness1, &w.Thickness1)
	applyRequired(v, "qualityLevel", in.QualityLevel, &w.QualityLevel)
	applyRequired(v, "weldingProcess", in.WeldingProcess, &w.WeldingProcess)
	applyRequired(v, "joint", in.Joint, &w.Joint)

	applyOptional(v, "objectName", in.ObjectName, &w.ObjectName)
	applyOptional(v, "contractor", in.Contractor, &w.Contractor)
	applyOptional(v, "customer", in.Customer, &w.Customer)
	applyOptional(v, "notes", in.Notes, &w.Notes)
	applyOptional(v, "thickness2", in.Thickness2, &w.Thickness2)
	applyOptional(v, "weldDate", in.WeldDate, &w.WeldDate)
	applyOptional(v, "weldStatus", in.WeldStatus, &w.WeldStatus)
	applyOptional(v, "conclusion", in.Conclusion, &w.Conclusion)

	if in.TestMethods.Set {
		var methods []models.TestMethod
		if in.TestMethods.Value != nil {
			methods = *in.TestMethods.Value
		}
		v.check("testMethods", methods)
		w.TestMethods = dedupeMethods(methods)
	}

	if err := v.orNil(); err != nil {
		return nil, err
	}
	w.UpdatedAt = time.Now()
	if err := s.repo.SaveWeld(ctx, w); err != nil {
		return nil, s.mapErr("update", id, err)
	}
	s.log.Info("weld updated", zap.String("id", w.ID), zap.Bool("empty_patch", in.Empty()))
	ev := s.event(models.WeldUpdated, w)
	if previousObject != models.StringOrEmpty(w.ObjectName) {
		ev.PreviousObjectName = &previousObject
	}
	s.events.Publish(ev)
	return w, nil
}

func (s *WeldService) Remove(ctx context.Context, id string) error {
	w, err := s.repo.GetWeld(ctx, id)
	if err != nil {
		return s.mapErr("remove", id, err)
	}
	if err := s.repo.DeleteWeld(ctx, id); err != nil {
		return s.mapErr("remove", id, err)
	}
	s.log.Info("weld removed", zap.String("id", id))
	s.publish(models.WeldDeleted, w)
	return nil
}

func (s *WeldService) publish(t models.WeldEventType, w *models.Weld) {
	s.events.Publish(s.event(t, w))
}

func (s *WeldService) event(t models.WeldEventType, w *models.Weld) models.WeldEvent {
	snapshot := w.Clone()
	return models.WeldEvent{Type: t, ID: w.ID, Weld: &snapshot}
}

func (s *WeldService) mapErr(op, id string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrWeldNotFound, id)
	}
	s.log.Error("weld store failure", zap.String("op", op), zap.String("id", id), zap.Error(err))
	return fmt.Errorf("%s weld: %w", op, err)
}

// applyRequired copies a present value into dst; null is rejected.
func applyRequired[T any](v *ValidationError, field string, in models.Optional[T], dst *T) {
	if !in.Set {
		return
	}
	if in.Value == nil {
		v.notNull(field)
		return
	}
	*dst = *in.Value
	v.check(field, *dst)
}

// applyOptional copies a present value into dst; null clears it.
func applyOptional[T any](v *ValidationError, field string, in models.Optional[T], dst **T) {
	if !in.Set {
		return
	}
	if in.Value == nil {
		*dst = nil
		return
	}
	val := *in.Value
	*dst = &val
	v.check(field, val)
}
