package dtp

import (
	"fmt"
	"time"
)

type phrasing struct {
	months [12]string
	// date takes month name, day and year; time takes hour and minute.
	date string
	time string
}

var catalog = map[Language]phrasing{
	English: {
		months: [12]string{
			"January", "February", "March", "April", "May", "June",
			"July", "August", "September", "October", "November", "December",
		},
		date: "Today's date is %s %d, %d",
		time: "The current time is %d:%d",
	},
	Maori: {
		months: [12]string{
			"Kohitātea", "Hui-tanguru", "Poutū-te-rangi", "Paenga-whāwhā", "Haratua", "Pipiri",
			"Hōngongoi", "Here-turi-koka", "Mahuru", "Whiringa-ā-nuku", "Whiringa-ā-rangi", "Hakihea",
		},
		date: "Ko te ra o tenei ra ko %s %d, %d",
		time: "Ko te wa o tenei wa %d:%d",
	},
	German: {
		months: [12]string{
			"Januar", "Februar", "März", "April", "Mai", "Juni",
			"Juli", "August", "September", "Oktober", "November", "Dezember",
		},
		date: "Heute ist der %s %d, %d",
		time: "Die Uhrzeit ist %d:%d",
	},
}

func lookup(lang Language) (phrasing, error) {
	p, ok := catalog[lang]
	if !ok {
		return phrasing{}, protocolErr("language code", int(lang), "unsupported language")
	}
	return p, nil
}

// MonthName returns the name of month (1-12) in lang.
func MonthName(lang Language, month int) (string, error) {
	p, err := lookup(lang)
	if err != nil {
		return "", err
	}
	if err = checkRange("month", month, 1, 12); err != nil {
		return "", err
	}
	return p.months[month-1], nil
}

// BuildText phrases the date or time of now in lang.
// Numbers are written without padding, so 09:05 reads "9:5".
func BuildText(lang Language, kind RequestKind, now time.Time) (string, error) {
	p, err := lookup(lang)
	if err != nil {
		return "", err
	}
	return p.phrase(kind, now)
}

// phrase fills the date or time template. The length check keeps the
// one-byte text length field honest if the catalog ever grows longer
// phrasings; the shipped sentences are far below the limit.
func (p phrasing) phrase(kind RequestKind, now time.Time) (string, error) {
	var text string
	switch kind {
	case Date:
		text = fmt.Sprintf(p.date, p.months[now.Month()-1], now.Day(), now.Year())
	case Time:
		text = fmt.Sprintf(p.time, now.Hour(), now.Minute())
	default:
		return "", protocolErr("request kind", int(kind), "must be date or time")
	}

	if len(text) > MaxTextLength {
		return "", protocolErr("text length", len(text), "exceeds 255 bytes")
	}
	return text, nil
}
