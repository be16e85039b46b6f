package services

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

type SweeperUserRepository interface {
	ListExpiredPendingIDs(cutoff time.Time) ([]uint, error)
	DeleteAccountAndRelatedData(userID uint) error
}

// SweeperService periodically purges registrations whose verification
// window elapsed, freeing the name and email for another attempt. The
// register handler also checks lazily, so the sweeper only bounds how
// long stale rows linger.
type SweeperService struct {
	users      SweeperUserRepository
	pendingTTL time.Duration
	cron       *cron.Cron
}

func NewSweeperService(users SweeperUserRepository, pendingTTL time.Duration, location *time.Location) *SweeperService {
	return &SweeperService{
		users:      users,
		pendingTTL: pendingTTL,
		cron:       cron.New(cron.WithLocation(location)),
	}
}

func (service *SweeperService) Start(schedule string) error {
	if _, err := service.cron.AddFunc(schedule, service.SweepOnce); err != nil {
		return err
	}
	service.cron.Start()
	return nil
}

func (service *SweeperService) Stop() {
	<-service.cron.Stop().Done()
}

func (service *SweeperService) SweepOnce() {
	cutoff := time.Now().Add(-service.pendingTTL)
	ids, err := service.users.ListExpiredPendingIDs(cutoff)
	if err != nil {
		log.Printf("pending registration sweep failed: %v", err)
		return
	}

	removed := 0
	for _, id := range ids {
		if err := service.users.DeleteAccountAndRelatedData(id); err != nil {
			log.Printf("purge pending registration %d failed: %v", id, err)
			continue
		}
		removed++
	}
	if removed > 0 {
		log.Printf("purged %d expired pending registrations", removed)
	}
}
