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
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// --- DTOs ---

type SubmitRequestDTO struct {
	Type      string `json:"type" binding:"required,oneof=VACATION SICK_LEAVE WORK_FROM_HOME OTHER"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason"`
	Location  string `json:"location"`
}

type UpdateRequestDTO struct {
	Type      string `json:"type" binding:"omitempty,oneof=VACATION SICK_LEAVE WORK_FROM_HOME OTHER"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
	Location  string `json:"location"`
}

type RequestListFilter struct {
	Status string
	Type   string
	Page   int
	Limit  int
}

type RequestResponse struct {
	ID                 string  `json:"id"`
	UserID             string  `json:"user_id"`
	UserName           string  `json:"user_name,omitempty"`
	Type               string  `json:"type"`
	Status             string  `json:"status"`
	StartDate          string  `json:"start_date"`
	EndDate            string  `json:"end_date"`
	Reason             string  `json:"reason,omitempty"`
	Location           string  `json:"location,omitempty"`
	ApprovedBy         *string `json:"approved_by,omitempty"`
	ApproverName       string  `json:"approver_name,omitempty"`
	ApprovedAt         *string `json:"approved_at,omitempty"`
	RejectedAt         *string `json:"rejected_at,omitempty"`
	RejectionReason    string  `json:"rejection_reason,omitempty"`
	CancelledAt        *string `json:"cancelled_at,omitempty"`
	CancellationReason string  `json:"cancellation_reason,omitempty"`
	CreatedAt          string  `json:"created_at"`
}

// --- Interface ---

type RequestService interface {
	Submit(ctx context.Context, userID string, req SubmitRequestDTO) (RequestResponse, error)
	Update(ctx context.Context, userID string, id string, req UpdateRequestDTO) (RequestResponse, error)
	Cancel(ctx context.Context, userID string, id string, reason string) (RequestResponse, error)
	Approve(ctx context.Context, adminID string, id string) (RequestResponse, error)
	Reject(ctx context.Context, adminID string, id string, reason string) (RequestResponse, error)
	CancelApproved(ctx context.Context, adminID string, id string, reason string) (RequestResponse, error)
	Get(ctx context.Context, actorID string, actorRole string, id string) (RequestResponse, error)
	ListForUser(ctx context.Context, userID string, filter RequestListFilter) ([]RequestResponse, int64, error)
	ListAll(ctx context.Context, filter RequestListFilter) ([]RequestResponse, int64, error)
}

type requestService struct {
	txManager    repository.TransactionManager
	requestRepo  repository.RequestRepository
	hourRepo     repository.HourEntryRepository
	shiftRepo    repository.ShiftRepository
	summaryRepo  repository.SummaryRepository
	auditRepo    repository.AuditRepository
	notifier     NotificationService
	logger       *logrus.Logger
}

func NewRequestService(
	txManager repository.TransactionManager,
	requestRepo repository.RequestRepository,
	hourRepo repository.HourEntryRepository,
	shiftRepo repository.ShiftRepository,
	summaryRepo repository.SummaryRepository,
	auditRepo repository.AuditRepository,
	notifier NotificationService,
) RequestService {
	return &requestService{
		txManager:   txManager,
		requestRepo: requestRepo,
		hourRepo:    hourRepo,
		shiftRepo:   shiftRepo,
		summaryRepo: summaryRepo,
		auditRepo:   auditRepo,
		notifier:    notifier,
		logger:      logrus.New(),
	}
}

// autoGeneratedHours is written per weekday when a VACATION or SICK_LEAVE
// request is approved.
var autoGeneratedHours = decimal.NewFromInt(8)

// --- Implementation ---

func (s *requestService) Submit(ctx context.Context, userID string, req SubmitRequestDTO) (RequestResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return RequestResponse{}, fmt.Errorf("invalid user id: %w", err)
	}

	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return RequestResponse{}, err
	}

	request := model.Request{
		UserID:    uid,
		Type:      req.Type,
		Status:    model.RequestStatusPending,
		StartDate: start,
		EndDate:   end,
		Reason:    req.Reason,
		Location:  req.Location,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.requestRepo.Create(txCtx, &request); createErr != nil {
			return fmt.Errorf("failed to create request: %w", createErr)
		}
		return s.audit(txCtx, &uid, model.ActionSubmitRequest, &request)
	})
	if err != nil {
		return RequestResponse{}, err
	}

	return s.reload(ctx, request.ID)
}

func (s *requestService) Update(ctx context.Context, userID string, id string, req UpdateRequestDTO) (RequestResponse, error) {
	uid, requestID, err := parseIDs(userID, id)
	if err != nil {
		return RequestResponse{}, err
	}

	var request *model.Request
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		request, err = s.requestRepo.FindByIDForUpdate(txCtx, requestID)
		if err != nil || request.UserID != uid {
			return errors.New("request not found")
		}
		if request.Status != model.RequestStatusPending {
			return errors.New("can only update pending requests")
		}

		if req.Type != "" {
			request.Type = req.Type
		}
		if req.StartDate != "" {
			start, parseErr := workdays.ParseDate(req.StartDate)
			if parseErr != nil {
				return parseErr
			}
			request.StartDate = start
		}
		if req.EndDate != "" {
			end, parseErr := workdays.ParseDate(req.EndDate)
			if parseErr != nil {
				return parseErr
			}
			request.EndDate = end
		}
		if request.StartDate.After(request.EndDate) {
			return errors.New("start date must be before or equal to end date")
		}
		if req.Reason != "" {
			request.Reason = req.Reason
		}
		if req.Location != "" {
			request.Location = req.Location
		}

		if saveErr := s.requestRepo.Update(txCtx, request); saveErr != nil {
			return fmt.Errorf("failed to update request: %w", saveErr)
		}
		return s.audit(txCtx, &uid, model.ActionUpdateRequest, request)
	})
	if err != nil {
		return RequestResponse{}, err
	}

	return s.reload(ctx, request.ID)
}

func (s *requestService) Cancel(ctx context.Context, userID string, id string, reason string) (RequestResponse, error) {
	uid, requestID, err := parseIDs(userID, id)
	if err != nil {
		return RequestResponse{}, err
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		request, findErr := s.requestRepo.FindByIDForUpdate(txCtx, requestID)
		if findErr != nil || request.UserID != uid {
			return errors.New("request not found")
		}
		if request.Status != model.RequestStatusPending {
			return errors.New("can only cancel pending requests")
		}

		now := time.Now()
		request.Status = model.RequestStatusCancelled
		request.CancelledBy = &uid
		request.CancelledAt = &now
		request.CancellationReason = reason

		if saveErr := s.requestRepo.Update(txCtx, request); saveErr != nil {
			return fmt.Errorf("failed to cancel request: %w", saveErr)
		}
		return s.audit(txCtx, &uid, model.ActionCancelRequest, request)
	})
	if err != nil {
		return RequestResponse{}, err
	}

	return s.reload(ctx, requestID)
}

// Approve stamps the request APPROVED and writes its side effects in one
// transaction: an 8h hour entry per weekday for VACATION/SICK_LEAVE, and a
// shift cell per weekday for every type. The request row is locked first so
// concurrent approvals cannot both pass the PENDING guard.
func (s *requestService) Approve(ctx context.Context, adminID string, id string) (RequestResponse, error) {
	approverID, requestID, err := parseIDs(adminID, id)
	if err != nil {
		return RequestResponse{}, err
	}

	var request *model.Request
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		request, err = s.requestRepo.FindByIDForUpdate(txCtx, requestID)
		if err != nil {
			return errors.New("request not found")
		}
		if request.Status != model.RequestStatusPending {
			return errors.New("can only approve pending requests")
		}

		now := time.Now()
		request.Status = model.RequestStatusApproved
		request.ApprovedBy = &approverID
		request.ApprovedAt = &now

		if saveErr := s.requestRepo.Update(txCtx, request); saveErr != nil {
			return fmt.Errorf("failed to approve request: %w", saveErr)
		}
		if execErr := s.writeApprovalSideEffects(txCtx, request); execErr != nil {
			return fmt.Errorf("failed to apply approval side effects: %w", execErr)
		}
		return s.audit(txCtx, &approverID, model.ActionApproveRequest, request)
	})
	if err != nil {
		return RequestResponse{}, err
	}

	// Derived state and notifications happen after commit; a failure here
	// leaves the summary stale until the next refresh, not the approval undone.
	if refreshErr := s.summaryRepo.Refresh(ctx); refreshErr != nil {
		s.logger.WithError(refreshErr).Error("summary refresh after approval failed")
	}
	s.notifier.NotifyRequestEvent(ctx, request, model.NotificationRequestApproved)

	return s.reload(ctx, requestID)
}

func (s *requestService) Reject(ctx context.Context, adminID string, id string, reason string) (RequestResponse, error) {
	rejectorID, requestID, err := parseIDs(adminID, id)
	if err != nil {
		return RequestResponse{}, err
	}

	var request *model.Request
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		request, err = s.requestRepo.FindByIDForUpdate(txCtx, requestID)
		if err != nil {
			return errors.New("request not found")
		}
		if request.Status != model.RequestStatusPending {
			return errors.New("can only reject pending requests")
		}

		now := time.Now()
		request.Status = model.RequestStatusRejected
		request.RejectedBy = &rejectorID
		request.RejectedAt = &now
		request.RejectionReason = reason

		if saveErr := s.requestRepo.Update(txCtx, request); saveErr != nil {
			return fmt.Errorf("failed to reject request: %w", saveErr)
		}
		// Defensive cleanup: a PENDING request never produced shifts, but the
		// exact back-reference makes this a no-op rather than a guess.
		if delErr := s.shiftRepo.DeleteBySourceRequest(txCtx, request.ID); delErr != nil {
			return fmt.Errorf("failed to remove generated shifts: %w", delErr)
		}
		return s.audit(txCtx, &rejectorID, model.ActionRejectRequest, request)
	})
	if err != nil {
		return RequestResponse{}, err
	}

	s.notifier.NotifyRequestEvent(ctx, request, model.NotificationRequestRejected)

	return s.reload(ctx, requestID)
}

// CancelApproved is the admin late cancellation of an already-approved
// request. It reverses the approval's generated rows by source_request_id.
func (s *requestService) CancelApproved(ctx context.Context, adminID string, id string, reason string) (RequestResponse, error) {
	cancellerID, requestID, err := parseIDs(adminID, id)
	if err != nil {
		return RequestResponse{}, err
	}
	if reason == "" {
		return RequestResponse{}, errors.New("cancellation reason is required")
	}

	var request *model.Request
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		request, err = s.requestRepo.FindByIDForUpdate(txCtx, requestID)
		if err != nil {
			return errors.New("request not found")
		}
		if request.Status != model.RequestStatusApproved {
			return errors.New("can only cancel approved requests")
		}

		now := time.Now()
		request.Status = model.RequestStatusCancelled
		request.CancelledBy = &cancellerID
		request.CancelledAt = &now
		request.CancellationReason = reason

		if saveErr := s.requestRepo.Update(txCtx, request); saveErr != nil {
			return fmt.Errorf("failed to cancel request: %w", saveErr)
		}
		if delErr := s.hourRepo.DeleteBySourceRequest(txCtx, request.ID); delErr != nil {
			return fmt.Errorf("failed to remove generated hour entries: %w", delErr)
		}
		if delErr := s.shiftRepo.DeleteBySourceRequest(txCtx, request.ID); delErr != nil {
			return fmt.Errorf("failed to remove generated shifts: %w", delErr)
		}
		return s.audit(txCtx, &cancellerID, model.ActionCancelApprovedRequest, request)
	})
	if err != nil {
		return RequestResponse{}, err
	}

	if refreshErr := s.summaryRepo.Refresh(ctx); refreshErr != nil {
		s.logger.WithError(refreshErr).Error("summary refresh after late cancellation failed")
	}
	s.notifier.NotifyRequestEvent(ctx, request, model.NotificationRequestCancelled)

	return s.reload(ctx, requestID)
}

func (s *requestService) Get(ctx context.Context, actorID string, actorRole string, id string) (RequestResponse, error) {
	uid, rid, err := parseIDs(actorID, id)
	if err != nil {
		return RequestResponse{}, err
	}

	request, err := s.requestRepo.FindByIDWithRelations(ctx, rid)
	if err != nil {
		return RequestResponse{}, errors.New("request not found")
	}
	if request.UserID != uid && actorRole != model.RoleAdmin {
		return RequestResponse{}, errors.New("request not found")
	}
	return toRequestResponse(request), nil
}

func (s *requestService) ListForUser(ctx context.Context, userID string, filter RequestListFilter) ([]RequestResponse, int64, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid user id: %w", err)
	}
	return s.list(ctx, repository.RequestFilter{
		UserID: &uid,
		Status: filter.Status,
		Type:   filter.Type,
		Page:   filter.Page,
		Limit:  filter.Limit,
	})
}

func (s *requestService) ListAll(ctx context.Context, filter RequestListFilter) ([]RequestResponse, int64, error) {
	return s.list(ctx, repository.RequestFilter{
		Status: filter.Status,
		Type:   filter.Type,
		Page:   filter.Page,
		Limit:  filter.Limit,
	})
}

// --- Internals ---

// writeApprovalSideEffects inserts hour entries and upserts shifts for every
// weekday in the request range. Weekday-only and not holiday-aware; existing
// manual hour entries on the same day are left alone and reported separately
// by the summary's manual/tracked split.
func (s *requestService) writeApprovalSideEffects(txCtx context.Context, request *model.Request) error {
	marker := fmt.Sprintf("Auto-generated from %s request", request.Type)
	days := workdays.Weekdays(request.StartDate, request.EndDate)

	if request.Type == model.RequestTypeVacation || request.Type == model.RequestTypeSickLeave {
		for _, day := range days {
			entry := model.HourEntry{
				UserID:          request.UserID,
				Date:            day,
				Hours:           autoGeneratedHours,
				Type:            request.Type,
				Description:     marker,
				Source:          model.SourceRequestApproval,
				SourceRequestID: &request.ID,
			}
			if err := s.hourRepo.Create(txCtx, &entry); err != nil {
				return fmt.Errorf("failed to create hour entry for %s: %w", day.Format(workdays.DateLayout), err)
			}
		}
	}

	location := model.ShiftLocationForRequestType(request.Type)
	for _, day := range days {
		existing, err := s.shiftRepo.FindByUserDate(txCtx, request.UserID, day)
		if err == nil {
			existing.Location = location
			existing.Notes = marker
			existing.Source = model.SourceRequestApproval
			existing.SourceRequestID = &request.ID
			if updateErr := s.shiftRepo.Update(txCtx, existing); updateErr != nil {
				return fmt.Errorf("failed to overwrite shift for %s: %w", day.Format(workdays.DateLayout), updateErr)
			}
			continue
		}

		shift := model.Shift{
			UserID:          request.UserID,
			Date:            day,
			Location:        location,
			Notes:           marker,
			Source:          model.SourceRequestApproval,
			SourceRequestID: &request.ID,
		}
		if createErr := s.shiftRepo.Create(txCtx, &shift); createErr != nil {
			return fmt.Errorf("failed to create shift for %s: %w", day.Format(workdays.DateLayout), createErr)
		}
	}

	return nil
}

func (s *requestService) list(ctx context.Context, filter repository.RequestFilter) ([]RequestResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	requests, total, err := s.requestRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch requests: %w", err)
	}

	result := make([]RequestResponse, 0, len(requests))
	for i := range requests {
		result = append(result, toRequestResponse(&requests[i]))
	}
	return result, total, nil
}

func (s *requestService) reload(ctx context.Context, id uuid.UUID) (RequestResponse, error) {
	request, err := s.requestRepo.FindByIDWithRelations(ctx, id)
	if err != nil {
		return RequestResponse{}, fmt.Errorf("failed to reload request: %w", err)
	}
	return toRequestResponse(request), nil
}

func (s *requestService) audit(txCtx context.Context, actorID *uuid.UUID, action string, request *model.Request) error {
	details, _ := json.Marshal(map[string]interface{}{
		"type":   request.Type,
		"status": request.Status,
		"start":  request.StartDate.Format(workdays.DateLayout),
		"end":    request.EndDate.Format(workdays.DateLayout),
	})
	entry := model.AuditLog{
		UserID:     actorID,
		Action:     action,
		EntityID:   request.ID.String(),
		EntityName: request.Type,
		Details:    string(details),
	}
	if err := s.auditRepo.Log(txCtx, &entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

// --- Helpers ---

func parseIDs(userID, requestID string) (uuid.UUID, uuid.UUID, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid user id: %w", err)
	}
	rid, err := uuid.Parse(requestID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid request id: %w", err)
	}
	return uid, rid, nil
}

func parseDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := workdays.ParseDate(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := workdays.ParseDate(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, errors.New("start date must be before or equal to end date")
	}
	return start, end, nil
}

func toRequestResponse(r *model.Request) RequestResponse {
	resp := RequestResponse{
		ID:                 r.ID.String(),
		UserID:             r.UserID.String(),
		Type:               r.Type,
		Status:             r.Status,
		StartDate:          r.StartDate.Format(workdays.DateLayout),
		EndDate:            r.EndDate.Format(workdays.DateLayout),
		Reason:             r.Reason,
		Location:           r.Location,
		RejectionReason:    r.RejectionReason,
		CancellationReason: r.CancellationReason,
		CreatedAt:          r.CreatedAt.Format(time.RFC3339),
	}
	if r.User != nil {
		resp.UserName = r.User.Name
	}
	if r.ApprovedBy != nil {
		v := r.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if r.Approver != nil {
		resp.ApproverName = r.Approver.Name
	}
	if r.ApprovedAt != nil {
		v := r.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	if r.RejectedAt != nil {
		v := r.RejectedAt.Format(time.RFC3339)
		resp.RejectedAt = &v
	}
	if r.CancelledAt != nil {
		v := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &v
	}
	return resp
}
