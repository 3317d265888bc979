package feedback

import (
	"context"
	"errors"
	"strings"

	feedbackerrors "go-hrms/internal/feedback/errors"
	"go-hrms/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const reviewReply = "Thank you. Your review has been submitted successfully."

type Service interface {
	Chat(ctx context.Context, employeeID string, req ChatRequest) (FeedbackResponse, error)
	Review(ctx context.Context, employeeID string, req ReviewRequest) (FeedbackResponse, error)
	History(ctx context.Context, employeeIDs []uuid.UUID) ([]FeedbackResponse, error)
}

type service struct {
	repo    Repository
	replies ReplyGenerator
	logger  *zap.Logger
}

func NewService(repo Repository, replies ReplyGenerator, logger ...*zap.Logger) Service {
	l := zap.L().Named("feedback.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("feedback.service")
	}
	if replies == nil {
		replies = LocalReplyGenerator{}
	}
	return &service{repo: repo, replies: replies, logger: l}
}

func (s *service) Chat(ctx context.Context, employeeID string, req ChatRequest) (FeedbackResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return FeedbackResponse{}, feedbackerrors.ErrMessageRequired
	}
	id, err := s.activeEmployee(ctx, employeeID)
	if err != nil {
		return FeedbackResponse{}, err
	}

	row := &Feedback{
		ID:         uuid.New(),
		EmployeeID: id,
		Kind:       KindChat,
		Message:    message,
		BotReply:   s.replies.GenerateReply(ctx, message),
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("save feedback chat failed",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.Error(err),
		)
		return FeedbackResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) Review(ctx context.Context, employeeID string, req ReviewRequest) (FeedbackResponse, error) {
	review := strings.TrimSpace(req.Review)
	if review == "" {
		return FeedbackResponse{}, feedbackerrors.ErrReviewRequired
	}
	if req.Rating < 1 || req.Rating > 5 {
		return FeedbackResponse{}, feedbackerrors.ErrInvalidRating
	}
	id, err := s.activeEmployee(ctx, employeeID)
	if err != nil {
		return FeedbackResponse{}, err
	}

	rating := req.Rating
	row := &Feedback{
		ID:         uuid.New(),
		EmployeeID: id,
		Kind:       KindReview,
		Message:    review,
		BotReply:   reviewReply,
		Rating:     &rating,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("save feedback review failed",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.Error(err),
		)
		return FeedbackResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) History(ctx context.Context, employeeIDs []uuid.UUID) ([]FeedbackResponse, error) {
	if len(employeeIDs) == 0 {
		return []FeedbackResponse{}, nil
	}
	rows, err := s.repo.FindRecent(ctx, employeeIDs, historyLimit)
	if err != nil {
		return nil, err
	}
	out := make([]FeedbackResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, mapToResponse(r))
	}
	return out, nil
}

func (s *service) activeEmployee(ctx context.Context, employeeID string) (uuid.UUID, error) {
	id, err := uuid.Parse(employeeID)
	if err != nil {
		return uuid.Nil, feedbackerrors.ErrEmployeeNotFound
	}
	status, err := s.repo.GetEmployeeStatus(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, feedbackerrors.ErrEmployeeNotFound
		}
		return uuid.Nil, err
	}
	if status != "active" {
		return uuid.Nil, feedbackerrors.ErrEmployeeNotFound
	}
	return id, nil
}

func mapToResponse(f Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:        f.ID.String(),
		Kind:      f.Kind,
		Message:   f.Message,
		BotReply:  f.BotReply,
		Rating:    f.Rating,
		CreatedAt: f.CreatedAt,
	}
}
