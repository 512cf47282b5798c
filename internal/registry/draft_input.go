package registry

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/zaqqye/weld_backend_v1/internal/models"
)

var ErrBadValue = errors.New("value is not valid")

// DraftFields are the draft inputs a keyboard form walks through, in order.
var DraftFields = []string{"weldNumber", "diameter", "thickness1", "thickness2", "qualityLevel", "weldDate", "notes"}

// SetText parses text into one draft field. Empty text clears the field.
func (d *Draft) SetText(field, text string) error {
	text = strings.TrimSpace(text)
	switch field {
	case "weldNumber":
		d.WeldNumber = text
	case "diameter", "thickness1", "thickness2":
		var v *float64
		if text != "" {
			f, err := ParseNumber(text)
			if err != nil {
				return fmt.Errorf("%s: %w", field, err)
			}
			v = &f
		}
		switch field {
		case "diameter":
			d.Diameter = v
		case "thickness1":
			d.Thickness1 = v
		default:
			d.Thickness2 = v
		}
	case "qualityLevel":
		if text == "" {
			return nil
		}
		q := models.QualityLevel(strings.ToUpper(text))
		if !q.Valid() {
			return fmt.Errorf("%s: %w", field, ErrBadValue)
		}
		d.QualityLevel = q
	case "weldDate":
		if text == "" {
			d.WeldDate = ""
			return nil
		}
		date, err := ParseDate(text)
		if err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
		d.WeldDate = date
	case "notes":
		d.Notes = text
	default:
		return fmt.Errorf("%s: %w", field, ErrBadValue)
	}
	return nil
}

// ParseNumber accepts a decimal point or comma. Infinities and NaN are rejected.
func ParseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, ErrBadValue
	}
	return v, nil
}

// ParseDate accepts ISO or DD.MM.YYYY input and returns an ISO date.
func ParseDate(s string) (string, error) {
	for _, layout := range []string{"2006-01-02", "02.01.2006"} {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", ErrBadValue
}

// HeaderFor returns the column header of field, or field itself.
func HeaderFor(field string) string {
	for _, c := range Columns {
		if c.Field == field {
			return c.Header
		}
	}
	return field
}
