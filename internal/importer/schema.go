// Package importer tablo (xlsx/csv) dosyalarını bir şemaya göre satır satır doğrular.
package importer

import (
	"strings"
	"time"
)

// FieldType sütun değer tipi
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeEmail   FieldType = "email"
	TypeNumber  FieldType = "number"
	TypeInteger FieldType = "integer"
	TypeDate    FieldType = "date"
	TypeEnum    FieldType = "enum"
)

// Field tek bir sütun tanımı
type Field struct {
	Key      string    // kayıttaki anahtar
	Headers  []string  // kabul edilen başlıklar (Türkçe ve İngilizce)
	Type     FieldType
	Required bool
	Enum     []string // TypeEnum için kanonik değerler
	MaxLen   int      // 0 ise sınırsız
	Unique   bool     // dosya içinde tekrar edemez
}

// Schema içe aktarma şeması
type Schema struct {
	Fields  []Field
	MaxRows int // 0 ise sınırsız
}

// Record doğrulanmış ve tiplerine dönüştürülmüş satır
type Record struct {
	Row    int
	Values map[string]interface{}
}

// String metin değeri; yoksa boş döner
func (r Record) String(key string) string {
	if v, ok := r.Values[key].(string); ok {
		return v
	}
	return ""
}

// Float sayısal değer
func (r Record) Float(key string) (float64, bool) {
	v, ok := r.Values[key].(float64)
	return v, ok
}

// Int tamsayı değer
func (r Record) Int(key string) (int, bool) {
	v, ok := r.Values[key].(int)
	return v, ok
}

// Time tarih değeri
func (r Record) Time(key string) (time.Time, bool) {
	v, ok := r.Values[key].(time.Time)
	return v, ok
}

// RowError satır bazında doğrulama hatası. Row, başlık satırı 1 olmak üzere tablo satır numarasıdır.
type RowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Result doğrulama sonucu
type Result struct {
	Rows   []Record
	Errors []RowError
	Total  int // boş olmayan veri satırı sayısı
	Valid  int
}

// InvalidRows hatalı satır numaralarının kümesi
func (r *Result) InvalidRows() map[int]bool {
	rows := make(map[int]bool, len(r.Errors))
	for _, e := range r.Errors {
		rows[e.Row] = true
	}
	return rows
}

func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(h))), " ")
}
