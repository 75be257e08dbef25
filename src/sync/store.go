package sync

import (
	"context"
	"strconv"

	"github.com/opensquare-network/referenda-syncer/src/utils/config"
	"github.com/opensquare-network/referenda-syncer/src/utils/logger"
	"github.com/opensquare-network/referenda-syncer/src/utils/model"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the dedup ledger backed by postgres. Published indexes are
// additionally cached in memory since rows are never removed.
type Store struct {
	config *config.Config
	log    *logrus.Entry
	db     *gorm.DB
	cache  *cache.Cache
}

func NewStore(config *config.Config) (self *Store) {
	self = new(Store)
	self.config = config
	self.log = logger.NewSublogger("store")
	self.cache = cache.New(cache.NoExpiration, 0)
	return
}

func (self *Store) WithDB(db *gorm.DB) *Store {
	self.db = db
	return self
}

func (self *Store) IsPublished(ctx context.Context, referendumIndex uint32) (published bool, err error) {
	key := cacheKey(referendumIndex)
	if _, ok := self.cache.Get(key); ok {
		return true, nil
	}

	var count int64
	err = self.db.WithContext(ctx).
		Table(model.TablePublishedProposal).
		Where("referendum_index = ?", referendumIndex).
		Count(&count).
		Error
	if err != nil {
		return
	}

	published = count > 0
	if published {
		self.cache.SetDefault(key, struct{}{})
	}
	return
}

// Idempotent: a concurrent or repeated insert of the same referendum is
// swallowed by the unique index, the row is never updated.
func (self *Store) RecordPublished(ctx context.Context, proposal *model.PublishedProposal) (err error) {
	err = self.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "referendum_index"}},
			DoNothing: true,
		}).
		Create(proposal).
		Error
	if err != nil {
		return
	}

	self.cache.SetDefault(cacheKey(proposal.ReferendumIndex), struct{}{})
	return
}

// Highest recorded referendum index, -1 when the ledger is empty.
// Only used to shorten the source walk, dedup is always per row.
func (self *Store) MaxPublishedIndex(ctx context.Context) (index int64, err error) {
	err = self.db.WithContext(ctx).
		Table(model.TablePublishedProposal).
		Select("COALESCE(MAX(referendum_index), -1)").
		Scan(&index).
		Error
	return
}

func (self *Store) SaveSyncRun(ctx context.Context, run *model.SyncRun) (err error) {
	return self.db.WithContext(ctx).Create(run).Error
}

func cacheKey(referendumIndex uint32) string {
	return strconv.FormatUint(uint64(referendumIndex), 10)
}
