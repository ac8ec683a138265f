package importer

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func testSchema() Schema {
	return Schema{
		MaxRows: 5,
		Fields: []Field{
			{Key: "first_name", Headers: []string{"Ad", "First Name"}, Type: TypeString, Required: true, MaxLen: 50},
			{Key: "email", Headers: []string{"E-posta", "Email"}, Type: TypeEmail, Required: true, Unique: true},
			{Key: "gross_salary", Headers: []string{"Brüt Maaş"}, Type: TypeNumber},
			{Key: "annual_leave_days", Headers: []string{"Yıllık İzin"}, Type: TypeInteger},
			{Key: "hire_date", Headers: []string{"İşe Giriş Tarihi"}, Type: TypeDate, Required: true},
			{Key: "role", Headers: []string{"Rol"}, Type: TypeEnum, Enum: []string{"admin", "hr_manager", "employee"}},
		},
	}
}

// ── Validate ──

func TestValidate_MalformedEmailFlagged(t *testing.T) {
	sheet := &Sheet{
		Header: []string{"Ad", "E-posta", "İşe Giriş Tarihi"},
		Rows: [][]string{
			{"Ayşe", "ayse@ornek.com.tr", "2023-01-02"},
			{"Mehmet", "mehmet-at-ornek.com", "2023-01-02"},
		},
	}

	res, err := Validate(testSchema(), sheet)
	if err != nil {
		t.Fatalf("beklenmeyen hata: %v", err)
	}
	if res.Total != 2 || res.Valid != 1 {
		t.Fatalf("Total=2 Valid=1 bekleniyordu, gelen Total=%d Valid=%d", res.Total, res.Valid)
	}
	if len(res.Errors) != 1 {
		t.Fatalf("1 satır hatası bekleniyordu, gelen %d: %+v", len(res.Errors), res.Errors)
	}
	e := res.Errors[0]
	if e.Row != 3 || e.Field != "email" {
		t.Errorf("hata 3. satır email alanında olmalı, gelen row=%d field=%s", e.Row, e.Field)
	}
	if !strings.Contains(e.Message, "e-posta") {
		t.Errorf("mesaj e-posta hatasını anlatmalı: %s", e.Message)
	}
}

func TestValidate_RequiredFieldMissingInRow(t *testing.T) {
	sheet := &Sheet{
		Header: []string{"Ad", "E-posta", "İşe Giriş Tarihi"},
		Rows:   [][]string{{"", "a@b.com", "2023-01-02"}},
	}
	res, err := Validate(testSchema(), sheet)
	if err != nil {
		t.Fatalf("beklenmeyen hata: %v", err)
	}
	if res.Valid != 0 || len(res.Errors) != 1 || res.Errors[0].Field != "first_name" {
		t.Fatalf("first_name zorunlu hatası bekleniyordu: %+v", res.Errors)
	}
}

func TestValidate_MissingColumns(t *testing.T) {
	sheet := &Sheet{
		Header: []string{"Ad"},
		Rows:   [][]string{{"Ayşe"}},
	}
	_, err := Validate(testSchema(), sheet)
	if !errors.Is(err, ErrMissingColumns) {
		t.Fatalf("ErrMissingColumns bekleniyordu, gelen %v", err)
	}
	var mc *MissingColumnsError
	if !errors.As(err, &mc) || len(mc.Columns) != 2 {
		t.Fatalf("2 eksik sütun bekleniyordu: %v", err)
	}
}

func TestValidate_HeaderCaseAndSpaceInsensitive(t *testing.T) {
	sheet := &Sheet{
		Header: []string{"  first   NAME ", "EMAIL", "hire_date"},
		Rows:   [][]string{{"Ali", "ALI@ORNEK.COM", "15.03.2021"}},
	}
	res, err := Validate(testSchema(), sheet)
	if err != nil {
		t.Fatalf("beklenmeyen hata: %v", err)
	}
	if res.Valid != 1 {
		t.Fatalf("1 geçerli satır bekleniyordu: %+v", res.Errors)
	}
	rec := res.Rows[0]
	if rec.String("email") != "ali@ornek.com" {
		t.Errorf("e-posta küçük harfe çevrilmeli, gelen %s", rec.String("email"))
	}
	d, ok := rec.Time("hire_date")
	if !ok || !d.Equal(time.Date(2021, 3, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("tarih 2021-03-15 olmalı, gelen %v", d)
	}
}

func TestValidate_CoercesTypes(t *testing.T) {
	sheet := &Sheet{
		Header: []string{"Ad", "E-posta", "İşe Giriş Tarihi", "Brüt Maaş", "Yıllık İzin", "Rol"},
		Rows: [][]string{
			{"Zeynep", "z@ornek.com", "45306", "1.234,50", "14", "HR_Manager"},
		},
	}
	res, err := Validate(testSchema(), sheet)
	if err != nil {
		t.Fatalf("beklenmeyen hata: %v", err)
	}
	if res.Valid != 1 {
		t.Fatalf("geçerli satır bekleniyordu: %+v", res.Errors)
	}
	rec := res.Rows[0]
	if v, _ := rec.Float("gross_salary"); v != 1234.5 {
		t.Errorf("gross_salary 1234.5 olmalı, gelen %v", v)
	}
	if v, _ := rec.Int("annual_leave_days"); v != 14 {
		t.Errorf("annual_leave_days 14 olmalı, gelen %v", v)
	}
	if rec.String("role") != "hr_manager" {
		t.Errorf("rol kanonik değere çevrilmeli, gelen %s", rec.String("role"))
	}
	d, _ := rec.Time("hire_date")
	if !d.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Excel seri tarihi 2024-01-15 olmalı, gelen %v", d)
	}
}

func TestValidate_InvalidValues(t *testing.T) {
	sheet := &Sheet{
		Header: []string{"Ad", "E-posta", "İşe Giriş Tarihi", "Yıllık İzin", "Rol"},
		Rows: [][]string{
			{"Can", "can@ornek.com", "31.02.2023", "2,5", "müdür"},
		},
	}
	res, err := Validate(testSchema(), sheet)
	if err != nil {
		t.Fatalf("beklenmeyen hata: %v", err)
	}
	if res.Valid != 0 {
		t.Fatal("satır geçersiz olmalı")
	}
	fields := map[string]bool{}
	for _, e := range res.Errors {
		fields[e.Field] = true
	}
	for _, f := range []string{"hire_date", "annual_leave_days", "role"} {
		if !fields[f] {
			t.Errorf("%s için hata bekleniyordu: %+v", f, res.Errors)
		}
	}
}

func TestValidate_DuplicateWithinFile(t *testing.T) {
	sheet := &Sheet{
		Header: []string{"Ad", "E-posta", "İşe Giriş Tarihi"},
		Rows: [][]string{
			{"A", "ayni@ornek.com", "2023-01-02"},
			{"B", "AYNI@ornek.com", "2023-01-02"},
		},
	}
	res, err := Validate(testSchema(), sheet)
	if err != nil {
		t.Fatalf("beklenmeyen hata: %v", err)
	}
	if res.Valid != 1 || len(res.Errors) != 1 || res.Errors[0].Row != 3 {
		t.Fatalf("ikinci satır tekrar hatası almalı: %+v", res.Errors)
	}
}

func TestValidate_DuplicateOfRejectedRowAccepted(t *testing.T) {
	sheet := &Sheet{
		Header: []string{"Ad", "E-posta", "İşe Giriş Tarihi"},
		Rows: [][]string{
			{"A", "ayni@ornek.com", "tarih yok"},
			{"B", "ayni@ornek.com", "2023-01-02"},
		},
	}
	res, err := Validate(testSchema(), sheet)
	if err != nil {
		t.Fatalf("beklenmeyen hata: %v", err)
	}
	if res.Valid != 1 || res.Rows[0].Row != 3 {
		t.Fatalf("reddedilen satırın tekrarı geçerli sayılmalı: %+v", res.Errors)
	}
	if len(res.Errors) != 1 || res.Errors[0].Row != 2 || res.Errors[0].Field != "hire_date" {
		t.Errorf("yalnızca 2. satırın tarih hatası bekleniyordu: %+v", res.Errors)
	}
}

func TestValidate_SkipsBlankRowsAndLimitsRows(t *testing.T) {
	sheet := &Sheet{
		Header: []string{"Ad", "E-posta", "İşe Giriş Tarihi"},
		Rows: [][]string{
			{"A", "a@ornek.com", "2023-01-02"},
			{"", " ", ""},
			{"B", "b@ornek.com", "2023-01-02"},
		},
	}
	res, err := Validate(testSchema(), sheet)
	if err != nil {
		t.Fatalf("beklenmeyen hata: %v", err)
	}
	if res.Total != 2 || res.Rows[1].Row != 4 {
		t.Fatalf("boş satır atlanmalı ve satır numarası korunmalı: total=%d rows=%+v", res.Total, res.Rows)
	}

	var many [][]string
	for i := 0; i < 6; i++ {
		many = append(many, []string{"X", "x@ornek.com", "2023-01-02"})
	}
	_, err = Validate(testSchema(), &Sheet{Header: sheet.Header, Rows: many})
	if !errors.Is(err, ErrTooManyRows) {
		t.Fatalf("ErrTooManyRows bekleniyordu, gelen %v", err)
	}
}

func TestValidate_NoDataRows(t *testing.T) {
	_, err := Validate(testSchema(), &Sheet{Header: []string{"Ad", "E-posta", "İşe Giriş Tarihi"}})
	if !errors.Is(err, ErrNoDataRows) {
		t.Fatalf("ErrNoDataRows bekleniyordu, gelen %v", err)
	}
}

// ── Okuyucular ──

func TestReadCSV_SemicolonAndBOM(t *testing.T) {
	data := "\xEF\xBB\xBFAd;E-posta;İşe Giriş Tarihi\nAyşe;ayse@ornek.com;2023-01-02\n"
	sheet, err := ReadCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("CSV okunamadı: %v", err)
	}
	if len(sheet.Header) != 3 || sheet.Header[0] != "Ad" {
		t.Fatalf("başlık hatalı: %q", sheet.Header)
	}
	if len(sheet.Rows) != 1 || sheet.Rows[0][1] != "ayse@ornek.com" {
		t.Fatalf("satır hatalı: %q", sheet.Rows)
	}
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheetName := f.GetSheetName(0)
	_ = f.SetSheetRow(sheetName, "A1", &[]interface{}{"Ad", "E-posta", "İşe Giriş Tarihi"})
	_ = f.SetSheetRow(sheetName, "A2", &[]interface{}{"Ayşe", "ayse@ornek.com", "2023-01-02"})
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("xlsx yazılamadı: %v", err)
	}

	sheet, err := Read("calisanlar.xlsx", &buf)
	if err != nil {
		t.Fatalf("xlsx okunamadı: %v", err)
	}
	res, err := Validate(testSchema(), sheet)
	if err != nil {
		t.Fatalf("beklenmeyen hata: %v", err)
	}
	if res.Valid != 1 {
		t.Fatalf("1 geçerli satır bekleniyordu: %+v", res.Errors)
	}
}

func TestRead_UnsupportedFormat(t *testing.T) {
	if _, err := Read("liste.pdf", strings.NewReader("x")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("ErrUnsupportedFormat bekleniyordu, gelen %v", err)
	}
}

func TestRead_BrokenXLS(t *testing.T) {
	_, err := Read("eski_liste.XLS", strings.NewReader("bu bir Excel 97 dosyası değil"))
	if err == nil {
		t.Fatal("bozuk .xls dosyası hata vermeli")
	}
	if errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf(".xls desteklenen biçim olmalı, gelen %v", err)
	}
}

func TestParseNumber(t *testing.T) {
	cases := map[string]float64{
		"42":        42,
		"42,5":      42.5,
		"1.234,56":  1234.56,
		"1234.56":   1234.56,
		" 10 000 ":  10000,
		"42.500":    42500,
		"1.234.567": 1234567,
		"-2.500":    -2500,
		"0.5":       0.5,
		"12.5000":   12.5,
	}
	for in, want := range cases {
		got, err := ParseNumber(in)
		if err != nil || got != want {
			t.Errorf("ParseNumber(%q) = %v, %v; beklenen %v", in, got, err, want)
		}
	}
	if _, err := ParseNumber("on bin"); err == nil {
		t.Error("metin sayı olarak kabul edilmemeli")
	}
}
