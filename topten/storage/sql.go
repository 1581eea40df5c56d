package storage

import (
	"context"
	"time"

	"hotposts/3rdparty/reddit"
	gormutil "hotposts/util/gorm"

	"gorm.io/gorm"
)

type SQL gorm.DB

func (s *SQL) Unmask() *gorm.DB {
	return (*gorm.DB)(s)
}

func (s *SQL) Init(ctx context.Context) error {
	return s.Unmask().WithContext(ctx).AutoMigrate(new(reddit.Thing))
}

func (s *SQL) SaveThings(ctx context.Context, things []reddit.Thing) error {
	if len(things) == 0 {
		return nil
	}

	return s.Unmask().WithContext(ctx).
		Clauses(gormutil.OnConflictClause(things, "primaryKey", true, nil)).
		Create(things).
		Error
}

func (s *SQL) DeleteStaleThings(ctx context.Context, until time.Time) (int64, error) {
	tx := s.Unmask().WithContext(ctx).
		Where("last_seen < ?", until).
		Delete(new(reddit.Thing))
	return tx.RowsAffected, tx.Error
}

func (s *SQL) GetTopTitles(ctx context.Context, subreddit string, limit int) ([]string, error) {
	titles := make([]string, 0, limit)
	// language=SQL
	return titles, s.Unmask().WithContext(ctx).Raw(`
		select title from reddit
		where subreddit = ? and title != ''
		order by ups desc, num_id desc
		limit ?`, subreddit, limit).
		Scan(&titles).
		Error
}
