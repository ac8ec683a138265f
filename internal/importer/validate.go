package importer

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

var (
	ErrMissingColumns = errors.New("zorunlu sütunlar eksik")
	ErrTooManyRows    = errors.New("satır sayısı üst sınırı aşıyor")
	ErrNoDataRows     = errors.New("dosyada veri satırı yok")
)

// MissingColumnsError eksik zorunlu sütunları listeler; errors.Is(err, ErrMissingColumns) ile yakalanır
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingColumns.Error(), strings.Join(e.Columns, ", "))
}

func (e *MissingColumnsError) Is(target error) bool { return target == ErrMissingColumns }

// TooManyRowsError satır sınırı aşıldı; errors.Is(err, ErrTooManyRows) ile yakalanır
type TooManyRowsError struct {
	Limit int
	Got   int
}

func (e *TooManyRowsError) Error() string {
	return fmt.Sprintf("%s (en fazla %d, dosyada %d)", ErrTooManyRows.Error(), e.Limit, e.Got)
}

func (e *TooManyRowsError) Is(target error) bool { return target == ErrTooManyRows }

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

var dateLayouts = []string{"2006-01-02", "02.01.2006", "02/01/2006", "2.1.2006"}

// Validate başlıkları şemaya eşler ve her satırı tek geçişte doğrular.
// Dosya düzeyindeki sorunlar (eksik sütun, satır sınırı) error olarak,
// satır düzeyindeki sorunlar Result.Errors içinde döner.
func Validate(schema Schema, sheet *Sheet) (*Result, error) {
	columns, err := resolveColumns(schema, sheet.Header)
	if err != nil {
		return nil, err
	}

	nonEmpty := 0
	for _, row := range sheet.Rows {
		if !isBlank(row) {
			nonEmpty++
		}
	}
	if nonEmpty == 0 {
		return nil, ErrNoDataRows
	}
	if schema.MaxRows > 0 && nonEmpty > schema.MaxRows {
		return nil, &TooManyRowsError{Limit: schema.MaxRows, Got: nonEmpty}
	}

	result := &Result{Total: nonEmpty}
	seen := make(map[string]map[string]int)

	for i, row := range sheet.Rows {
		if isBlank(row) {
			continue
		}
		rowNum := i + 2 // başlık 1. satır

		rec := Record{Row: rowNum, Values: make(map[string]interface{}, len(schema.Fields))}
		var rowErrs []RowError
		uniqueKeys := make(map[string]string)

		for fi, field := range schema.Fields {
			raw := ""
			if col := columns[fi]; col >= 0 && col < len(row) {
				raw = strings.TrimSpace(row[col])
			}
			if raw == "" {
				if field.Required {
					rowErrs = append(rowErrs, RowError{Row: rowNum, Field: field.Key, Message: fmt.Sprintf("%s alanı zorunludur", field.Key)})
				}
				continue
			}

			value, msg := coerce(field, raw)
			if msg != "" {
				rowErrs = append(rowErrs, RowError{Row: rowNum, Field: field.Key, Message: msg})
				continue
			}

			if field.Unique {
				key := strings.ToLower(fmt.Sprint(value))
				if first, dup := seen[field.Key][key]; dup {
					rowErrs = append(rowErrs, RowError{Row: rowNum, Field: field.Key, Message: fmt.Sprintf("%s değeri %d. satırda da var", field.Key, first)})
					continue
				}
				uniqueKeys[field.Key] = key
			}

			rec.Values[field.Key] = value
		}

		if len(rowErrs) > 0 {
			result.Errors = append(result.Errors, rowErrs...)
			continue
		}
		// Yalnızca geçerli satırlar tekillik için sayılır
		for fieldKey, key := range uniqueKeys {
			if seen[fieldKey] == nil {
				seen[fieldKey] = make(map[string]int)
			}
			seen[fieldKey][key] = rowNum
		}
		result.Rows = append(result.Rows, rec)
		result.Valid++
	}

	return result, nil
}

// resolveColumns her alan için sütun indeksini döner (-1: sütun yok)
func resolveColumns(schema Schema, header []string) ([]int, error) {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = normalizeHeader(h)
	}

	columns := make([]int, len(schema.Fields))
	var missing []string
	for fi, field := range schema.Fields {
		columns[fi] = -1
		aliases := append([]string{field.Key}, field.Headers...)
	search:
		for ci, h := range normalized {
			for _, alias := range aliases {
				if h != "" && h == normalizeHeader(alias) {
					columns[fi] = ci
					break search
				}
			}
		}
		if columns[fi] < 0 && field.Required {
			label := field.Key
			if len(field.Headers) > 0 {
				label = field.Headers[0]
			}
			missing = append(missing, label)
		}
	}

	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}
	return columns, nil
}

// coerce ham hücre değerini alan tipine çevirir; hata varsa kullanıcıya gösterilecek mesajı döner
func coerce(field Field, raw string) (interface{}, string) {
	switch field.Type {
	case TypeEmail:
		if !emailPattern.MatchString(raw) {
			return nil, fmt.Sprintf("geçersiz e-posta adresi: %q", raw)
		}
		return strings.ToLower(raw), ""

	case TypeNumber:
		f, err := ParseNumber(raw)
		if err != nil {
			return nil, fmt.Sprintf("%s sayısal olmalıdır: %q", field.Key, raw)
		}
		return f, ""

	case TypeInteger:
		f, err := ParseNumber(raw)
		if err != nil || f != math.Trunc(f) {
			return nil, fmt.Sprintf("%s tam sayı olmalıdır: %q", field.Key, raw)
		}
		return int(f), ""

	case TypeDate:
		t, err := ParseDate(raw)
		if err != nil {
			return nil, fmt.Sprintf("%s geçerli bir tarih olmalıdır (YYYY-AA-GG veya GG.AA.YYYY): %q", field.Key, raw)
		}
		return t, ""

	case TypeEnum:
		for _, allowed := range field.Enum {
			if strings.EqualFold(raw, allowed) {
				return allowed, ""
			}
		}
		return nil, fmt.Sprintf("%s için geçersiz değer %q, izin verilenler: %s", field.Key, raw, strings.Join(field.Enum, ", "))

	default:
		if field.MaxLen > 0 && utf8.RuneCountInString(raw) > field.MaxLen {
			return nil, fmt.Sprintf("%s en fazla %d karakter olabilir", field.Key, field.MaxLen)
		}
		return raw, ""
	}
}

var thousandsDots = regexp.MustCompile(`^-?\d{1,3}(\.\d{3})+$`)

// ParseNumber "1234.5", "1234,5", "1.234,50" ve "42.500" biçimlerini kabul eder
func ParseNumber(raw string) (float64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
	if thousandsDots.MatchString(s) {
		// 42.500 ve 1.234.567 binlik ayraçlı tam sayıdır
		s = strings.ReplaceAll(s, ".", "")
	}
	if strings.Contains(s, ",") {
		if strings.Contains(s, ".") && strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
		}
		s = strings.ReplaceAll(s, ",", ".")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("geçersiz sayı: %q", raw)
	}
	return f, nil
}

// ParseDate desteklenen metin biçimlerini ve Excel seri tarihlerini UTC gün başına çevirir
func ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	serial, err := strconv.ParseFloat(s, 64)
	if err != nil || serial < 1 || serial > 2958465 {
		return time.Time{}, fmt.Errorf("geçersiz tarih: %q", raw)
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
