package converter

import (
	"time"

	"therapy-booking/internal/domain/availability"

	"github.com/jackc/pgx/v5/pgtype"
)

func DateToInfra(d availability.Date) pgtype.Date {
	return pgtype.Date{Time: d.Time(), Valid: true}
}

func DatePtrToInfra(d *availability.Date) pgtype.Date {
	if d == nil {
		return pgtype.Date{Valid: false}
	}
	return DateToInfra(*d)
}

func DateFromInfra(pd pgtype.Date) availability.Date {
	return availability.DateOf(pd.Time, time.UTC)
}

func DatePtrFromInfra(pd pgtype.Date) *availability.Date {
	if !pd.Valid {
		return nil
	}
	d := DateFromInfra(pd)
	return &d
}
