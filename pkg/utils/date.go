package utils

import "time"

func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}

// UTCDay trunca o instante para o dia em UTC
func UTCDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// TimeframeRange calcula a janela [hoje-(dias-1), hoje] inclusiva em UTC
// usada por todos os clientes de provedores
func TimeframeRange(now time.Time, timeframeDays int) (time.Time, time.Time) {
	if timeframeDays < 1 {
		timeframeDays = 1
	}

	until := UTCDay(now)
	since := until.AddDate(0, 0, -(timeframeDays - 1))
	return since, until
}
