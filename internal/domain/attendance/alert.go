package attendance

import "time"

type AlertType string

const (
	LateClockIn  AlertType = "late_clock_in"
	LateClockOut AlertType = "late_clock_out"
	NoClockIn    AlertType = "no_clock_in"
)

// Label is the human readable name used in exports.
func (t AlertType) Label() string {
	switch t {
	case LateClockIn:
		return "Late Clock In"
	case LateClockOut:
		return "Late Clock Out"
	case NoClockIn:
		return "No Clock In"
	}
	return string(t)
}

type Alert struct {
	WorkerID    string     `json:"worker_id"`
	WorkerName  string     `json:"worker_name"`
	WorkerEmail string     `json:"-"`
	Type        AlertType  `json:"type"`
	Day         time.Time  `json:"-"`
	Date        string     `json:"date"`
	Time        *time.Time `json:"time"`
	Message     string     `json:"message"`
}

const (
	dayLayout  = "Monday, 02 January 2006"
	dateLayout = "2006-01-02"
)

func lateClockIn(w workerRef, day, at time.Time) Alert {
	return newAlert(w, LateClockIn, day, &at,
		"Clocked in late at "+at.Format("15:04")+" on "+day.Format(dayLayout))
}

func lateClockOut(w workerRef, day, at time.Time) Alert {
	return newAlert(w, LateClockOut, day, &at,
		"Clocked out late at "+at.Format("15:04")+" on "+day.Format(dayLayout))
}

func noClockIn(w workerRef, day time.Time) Alert {
	return newAlert(w, NoClockIn, day, nil,
		"No clock in recorded on "+day.Format(dayLayout))
}

type workerRef struct {
	id, name, email string
}

func newAlert(w workerRef, typ AlertType, day time.Time, at *time.Time, msg string) Alert {
	return Alert{
		WorkerID:    w.id,
		WorkerName:  w.name,
		WorkerEmail: w.email,
		Type:        typ,
		Day:         day,
		Date:        day.Format(dateLayout),
		Time:        at,
		Message:     msg,
	}
}
