package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"timetrack-backend/internal/model"
	"timetrack-backend/internal/repository"
	"timetrack-backend/pkg/workdays"

	"github.com/google/uuid"
)

// --- DTOs ---

type UpsertShiftDTO struct {
	// UserID is honored for admins only; regular users always write their own cell.
	UserID   string `json:"user_id"`
	Date     string `json:"date" binding:"required"`
	Location string `json:"location" binding:"required,oneof=OFFICE HOME VACATION SICK_LEAVE OTHER"`
	Notes    string `json:"notes"`
}

type ShiftResponse struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	Date     string `json:"date"`
	Location string `json:"location"`
	Notes    string `json:"notes,omitempty"`
	Source   string `json:"source"`
}

// --- Interface ---

type ShiftService interface {
	Upsert(ctx context.Context, actorID, actorRole string, req UpsertShiftDTO) (ShiftResponse, error)
	Delete(ctx context.Context, actorID, actorRole string, id string) error
	ListRange(ctx context.Context, actorID, actorRole, forUserID, startStr, endStr string) ([]ShiftResponse, error)
}

type shiftService struct {
	txManager repository.TransactionManager
	shiftRepo repository.ShiftRepository
	auditRepo repository.AuditRepository
}

func NewShiftService(txManager repository.TransactionManager, shiftRepo repository.ShiftRepository, auditRepo repository.AuditRepository) ShiftService {
	return &shiftService{txManager: txManager, shiftRepo: shiftRepo, auditRepo: auditRepo}
}

// --- Implementation ---

// Upsert writes the single calendar cell (user, date). Manual writes take the
// cell over from approval-generated shifts; last write wins either way.
func (s *shiftService) Upsert(ctx context.Context, actorID, actorRole string, req UpsertShiftDTO) (ShiftResponse, error) {
	actor, err := uuid.Parse(actorID)
	if err != nil {
		return ShiftResponse{}, fmt.Errorf("invalid user id: %w", err)
	}

	targetID := actor
	if req.UserID != "" && req.UserID != actorID {
		if actorRole != model.RoleAdmin {
			return ShiftResponse{}, errors.New("cannot edit another user's shift")
		}
		targetID, err = uuid.Parse(req.UserID)
		if err != nil {
			return ShiftResponse{}, fmt.Errorf("invalid user id: %w", err)
		}
	}

	date, err := workdays.ParseDate(req.Date)
	if err != nil {
		return ShiftResponse{}, err
	}

	var shift *model.Shift
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		existing, findErr := s.shiftRepo.FindByUserDate(txCtx, targetID, date)
		if findErr == nil {
			existing.Location = req.Location
			existing.Notes = req.Notes
			existing.Source = model.SourceManual
			existing.SourceRequestID = nil
			if updateErr := s.shiftRepo.Update(txCtx, existing); updateErr != nil {
				return fmt.Errorf("failed to update shift: %w", updateErr)
			}
			shift = existing
		} else {
			shift = &model.Shift{
				UserID:   targetID,
				Date:     date,
				Location: req.Location,
				Notes:    req.Notes,
				Source:   model.SourceManual,
			}
			if createErr := s.shiftRepo.Create(txCtx, shift); createErr != nil {
				return fmt.Errorf("failed to create shift: %w", createErr)
			}
		}

		details, _ := json.Marshal(map[string]interface{}{
			"date":     req.Date,
			"location": req.Location,
			"user_id":  targetID.String(),
		})
		entry := model.AuditLog{
			UserID:   &actor,
			Action:   model.ActionUpsertShift,
			EntityID: shift.ID.String(),
			Details:  string(details),
		}
		return s.auditRepo.Log(txCtx, &entry)
	})
	if err != nil {
		return ShiftResponse{}, err
	}

	return toShiftResponse(shift), nil
}

func (s *shiftService) Delete(ctx context.Context, actorID, actorRole string, id string) error {
	actor, shiftID, err := parseIDs(actorID, id)
	if err != nil {
		return err
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		shift, findErr := s.shiftRepo.FindByID(txCtx, shiftID)
		if findErr != nil {
			return errors.New("shift not found")
		}
		if shift.UserID != actor && actorRole != model.RoleAdmin {
			return errors.New("shift not found")
		}
		if delErr := s.shiftRepo.Delete(txCtx, shiftID); delErr != nil {
			return fmt.Errorf("failed to delete shift: %w", delErr)
		}

		entry := model.AuditLog{
			UserID:   &actor,
			Action:   model.ActionDeleteShift,
			EntityID: shiftID.String(),
		}
		return s.auditRepo.Log(txCtx, &entry)
	})
}

func (s *shiftService) ListRange(ctx context.Context, actorID, actorRole, forUserID, startStr, endStr string) ([]ShiftResponse, error) {
	actor, err := uuid.Parse(actorID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}
	start, end, err := parseDateRange(startStr, endStr)
	if err != nil {
		return nil, err
	}

	target := actor
	if forUserID != "" && forUserID != actorID {
		if actorRole != model.RoleAdmin {
			return nil, errors.New("cannot view another user's shifts")
		}
		target, err = uuid.Parse(forUserID)
		if err != nil {
			return nil, fmt.Errorf("invalid user id: %w", err)
		}
	}

	shifts, err := s.shiftRepo.ListRange(ctx, target, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shifts: %w", err)
	}

	result := make([]ShiftResponse, 0, len(shifts))
	for i := range shifts {
		result = append(result, toShiftResponse(&shifts[i]))
	}
	return result, nil
}

func toShiftResponse(s *model.Shift) ShiftResponse {
	return ShiftResponse{
		ID:       s.ID.String(),
		UserID:   s.UserID.String(),
		Date:     s.Date.Format(workdays.DateLayout),
		Location: s.Location,
		Notes:    s.Notes,
		Source:   s.Source,
	}
}
