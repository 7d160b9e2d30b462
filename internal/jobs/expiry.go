package jobs

import (
	"context"
	"log"
	"time"

	"najia-backend/internal/model"
	"najia-backend/internal/repository"
	"najia-backend/internal/service"

	"github.com/robfig/cron/v3"
)

const sweepTimeout = 5 * time.Minute

// ExpirySweeper downgrades accounts whose subscription lapsed. It runs
// daily shortly after midnight.
type ExpirySweeper struct {
	subRepo     repository.SubscriptionRepository
	userService service.UserService
	cron        *cron.Cron
}

func NewExpirySweeper(subRepo repository.SubscriptionRepository, userService service.UserService) *ExpirySweeper {
	return &ExpirySweeper{
		subRepo:     subRepo,
		userService: userService,
		cron:        cron.New(),
	}
}

func (s *ExpirySweeper) Start() error {
	_, err := s.cron.AddFunc("5 0 * * *", s.Sweep)
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

func (s *ExpirySweeper) Stop() {
	s.cron.Stop()
}

// Sweep expires due subscriptions and drops the owning accounts back to
// basic. Exported so it can be triggered outside the schedule.
func (s *ExpirySweeper) Sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	userIDs, err := s.subRepo.ExpireDue(ctx, time.Now())
	if err != nil {
		log.Printf("subscription expiry sweep failed: %v", err)
		return
	}

	for _, userID := range userIDs {
		if err := s.userService.UpdateAccountType(ctx, userID, model.AccountTypeBasic); err != nil {
			log.Printf("downgrade account %s failed: %v", userID, err)
		}
	}

	if len(userIDs) > 0 {
		log.Printf("expired %d subscriptions", len(userIDs))
	}
}
