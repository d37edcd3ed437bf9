package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/bsm/redislock"
	"github.com/momoa-tech/hardware_backend/config"
	"gorm.io/gorm"
)

// Document number scopes.
const (
	SequenceScopeOrder   = "ORD"
	SequenceScopeInvoice = "INV"
)

// DocumentSequence is a monotonic per-scope per-day counter backing
// human-readable document numbers. Deriving numbers from a row count would
// let two concurrent creates observe the same count; an atomic increment on
// a dedicated row cannot.
type DocumentSequence struct {
	Scope     string    `gorm:"primaryKey;size:20" json:"scope"`
	SeqDate   string    `gorm:"primaryKey;size:8" json:"seq_date"`
	LastValue int64     `gorm:"not null;default:0" json:"last_value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// nextDocumentNumber issues the next number for (scope, date) inside the
// caller's transaction, formatted {SCOPE}-{YYYYMMDD}-{NNNN}.
func nextDocumentNumber(tx *gorm.DB, scope string, date time.Time) (string, error) {
	seqDate := date.Format("20060102")

	// Best-effort lock to keep concurrent first-of-the-day inserts from
	// colliding. The database remains the source of truth either way.
	if locker := config.GetRedisLock(); locker != nil {
		lock, err := locker.Obtain(tx.Statement.Context, "seq:"+scope+":"+seqDate, 3*time.Second, nil)
		if err == nil {
			defer lock.Release(tx.Statement.Context)
		} else if err != redislock.ErrNotObtained {
			logger := config.GetLogger()
			config.LogError(logger, "models", "nextDocumentNumber", "redis lock", scope, err)
		}
	}

	for attempt := 0; attempt < 2; attempt++ {
		res := tx.Model(&DocumentSequence{}).
			Where("scope = ? AND seq_date = ?", scope, seqDate).
			Update("last_value", gorm.Expr("last_value + 1"))
		if res.Error != nil {
			return "", res.Error
		}
		if res.RowsAffected > 0 {
			var seq DocumentSequence
			if err := tx.First(&seq, "scope = ? AND seq_date = ?", scope, seqDate).Error; err != nil {
				return "", err
			}
			return fmt.Sprintf("%s-%s-%04d", scope, seqDate, seq.LastValue), nil
		}

		// First document of the day for this scope. A concurrent insert can
		// win the race on the primary key, in which case loop back to the
		// increment path.
		err := tx.Create(&DocumentSequence{Scope: scope, SeqDate: seqDate, LastValue: 1}).Error
		if err == nil {
			return fmt.Sprintf("%s-%s-%04d", scope, seqDate, 1), nil
		}
		if !isDuplicateKeyError(err) {
			return "", err
		}
	}

	return "", fmt.Errorf("could not allocate %s sequence for %s", scope, seqDate)
}

func isDuplicateKeyError(err error) bool {
	if err == gorm.ErrDuplicatedKey {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
