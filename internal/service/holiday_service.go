package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"timetrack-backend/internal/model"
	"timetrack-backend/internal/repository"
	"timetrack-backend/pkg/workdays"

	"github.com/google/uuid"
)

// --- DTOs ---

type HolidayDTO struct {
	Date        string `json:"date" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	IsRecurring bool   `json:"is_recurring"`
}

type HolidayResponse struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsRecurring bool   `json:"is_recurring"`
}

// --- Interface ---

type HolidayService interface {
	Create(ctx context.Context, actorID string, req HolidayDTO) (HolidayResponse, error)
	Update(ctx context.Context, actorID string, id string, req HolidayDTO) (HolidayResponse, error)
	Delete(ctx context.Context, actorID string, id string) error
	List(ctx context.Context) ([]HolidayResponse, error)
	// SetForRange materializes the holiday dates effective in [start, end],
	// expanding recurring holidays to their yearly occurrences.
	SetForRange(ctx context.Context, start, end time.Time) (workdays.HolidaySet, error)
}

type holidayService struct {
	txManager   repository.TransactionManager
	holidayRepo repository.HolidayRepository
	auditRepo   repository.AuditRepository
}

func NewHolidayService(txManager repository.TransactionManager, holidayRepo repository.HolidayRepository, auditRepo repository.AuditRepository) HolidayService {
	return &holidayService{txManager: txManager, holidayRepo: holidayRepo, auditRepo: auditRepo}
}

// --- Implementation ---

func (s *holidayService) Create(ctx context.Context, actorID string, req HolidayDTO) (HolidayResponse, error) {
	actor, err := uuid.Parse(actorID)
	if err != nil {
		return HolidayResponse{}, fmt.Errorf("invalid user id: %w", err)
	}
	date, err := workdays.ParseDate(req.Date)
	if err != nil {
		return HolidayResponse{}, err
	}

	var holiday model.Holiday
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if _, findErr := s.holidayRepo.FindByDate(txCtx, date); findErr == nil {
			return errors.New("a holiday already exists on this date")
		}

		holiday = model.Holiday{
			Date:        date,
			Name:        req.Name,
			Description: req.Description,
			IsRecurring: req.IsRecurring,
		}
		if createErr := s.holidayRepo.Create(txCtx, &holiday); createErr != nil {
			return fmt.Errorf("failed to create holiday: %w", createErr)
		}
		return s.audit(txCtx, &actor, model.ActionCreateHoliday, &holiday)
	})
	if err != nil {
		return HolidayResponse{}, err
	}

	return toHolidayResponse(&holiday), nil
}

func (s *holidayService) Update(ctx context.Context, actorID string, id string, req HolidayDTO) (HolidayResponse, error) {
	actor, holidayID, err := parseIDs(actorID, id)
	if err != nil {
		return HolidayResponse{}, err
	}
	date, err := workdays.ParseDate(req.Date)
	if err != nil {
		return HolidayResponse{}, err
	}

	var holiday *model.Holiday
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		holiday, err = s.holidayRepo.FindByID(txCtx, holidayID)
		if err != nil {
			return errors.New("holiday not found")
		}

		if !date.Equal(holiday.Date) {
			if _, findErr := s.holidayRepo.FindByDate(txCtx, date); findErr == nil {
				return errors.New("a holiday already exists on this date")
			}
		}

		holiday.Date = date
		holiday.Name = req.Name
		holiday.Description = req.Description
		holiday.IsRecurring = req.IsRecurring

		if saveErr := s.holidayRepo.Update(txCtx, holiday); saveErr != nil {
			return fmt.Errorf("failed to update holiday: %w", saveErr)
		}
		return s.audit(txCtx, &actor, model.ActionUpdateHoliday, holiday)
	})
	if err != nil {
		return HolidayResponse{}, err
	}

	return toHolidayResponse(holiday), nil
}

func (s *holidayService) Delete(ctx context.Context, actorID string, id string) error {
	actor, holidayID, err := parseIDs(actorID, id)
	if err != nil {
		return err
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		holiday, findErr := s.holidayRepo.FindByID(txCtx, holidayID)
		if findErr != nil {
			return errors.New("holiday not found")
		}
		if delErr := s.holidayRepo.Delete(txCtx, holidayID); delErr != nil {
			return fmt.Errorf("failed to delete holiday: %w", delErr)
		}
		return s.audit(txCtx, &actor, model.ActionDeleteHoliday, holiday)
	})
}

func (s *holidayService) List(ctx context.Context) ([]HolidayResponse, error) {
	holidays, err := s.holidayRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holidays: %w", err)
	}

	result := make([]HolidayResponse, 0, len(holidays))
	for i := range holidays {
		result = append(result, toHolidayResponse(&holidays[i]))
	}
	return result, nil
}

func (s *holidayService) SetForRange(ctx context.Context, start, end time.Time) (workdays.HolidaySet, error) {
	holidays, err := s.holidayRepo.ListForRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holidays: %w", err)
	}

	set := workdays.HolidaySet{}
	for _, holiday := range holidays {
		if !holiday.IsRecurring {
			set.Add(holiday.Date)
			continue
		}
		occurrences, expandErr := workdays.ExpandYearly(holiday.Date, start, end)
		if expandErr != nil {
			return nil, expandErr
		}
		for _, o := range occurrences {
			set.Add(o)
		}
	}
	return set, nil
}

func (s *holidayService) audit(txCtx context.Context, actorID *uuid.UUID, action string, holiday *model.Holiday) error {
	details, _ := json.Marshal(map[string]interface{}{
		"date":      holiday.Date.Format(workdays.DateLayout),
		"recurring": holiday.IsRecurring,
	})
	entry := model.AuditLog{
		UserID:     actorID,
		Action:     action,
		EntityID:   holiday.ID.String(),
		EntityName: holiday.Name,
		Details:    string(details),
	}
	if err := s.auditRepo.Log(txCtx, &entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

func toHolidayResponse(h *model.Holiday) HolidayResponse {
	return HolidayResponse{
		ID:          h.ID.String(),
		Date:        h.Date.Format(workdays.DateLayout),
		Name:        h.Name,
		Description: h.Description,
		IsRecurring: h.IsRecurring,
	}
}
