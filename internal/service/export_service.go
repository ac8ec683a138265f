package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"hr-intelligence/backend/internal/repository"
)

// ── Dışa aktarma hataları ──

var (
	ErrExportUnsupported  = errors.New("desteklenmeyen dışa aktarma biçimi")
	ErrExportGenerateFail = errors.New("dosya oluşturulamadı")
	ErrExportNoPayrolls   = errors.New("bu dönem için bordro bulunamadı")
)

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeCSV  = "text/csv; charset=utf-8"
)

// ExportFile handler katmanına dönen dosya
type ExportFile struct {
	Buffer      *bytes.Buffer
	Filename    string
	ContentType string
}

// ExportService dışa aktarma iş arayüzü
//
//   - Çalışan listesi xlsx veya csv
//   - Dönem bordrosu xlsx (toplam satırıyla)
//
// Dosya bellekte üretilir; yanıt başlıklarını handler yazar.
type ExportService interface {
	ExportEmployees(ctx context.Context, format string) (*ExportFile, error)
	ExportPayroll(ctx context.Context, year, month int) (*ExportFile, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService ExportService örneği oluşturur
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// table başlık + satırlar
type table struct {
	title  string
	header []string
	widths []float64
	rows   [][]interface{}
	footer []interface{}
}

// ═══════════════════════════════════════════════════════════
// ExportEmployees çalışan listesi
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportEmployees(ctx context.Context, format string) (*ExportFile, error) {
	if format == "" {
		format = "xlsx"
	}
	if format != "xlsx" && format != "csv" {
		return nil, ErrExportUnsupported
	}

	emps, _, err := s.repo.Employee.List(ctx, repository.EmployeeFilter{})
	if err != nil {
		s.logger.Error("çalışanlar sorgulanamadı", zap.Error(err))
		return nil, err
	}

	t := table{
		title:  "Çalışanlar",
		header: []string{"Ad", "Soyad", "E-posta", "Telefon", "Pozisyon", "Departman", "İşe Giriş Tarihi", "Brüt Maaş", "Durum", "Rol", "Yıllık İzin"},
		widths: []float64{16, 16, 30, 16, 22, 20, 16, 14, 12, 12, 12},
	}
	for _, e := range emps {
		dept := ""
		if e.Department != nil {
			dept = e.Department.Name
		}
		t.rows = append(t.rows, []interface{}{
			e.FirstName, e.LastName, e.Email, e.Phone, e.Position, dept,
			formatDate(e.HireDate), e.GrossSalary, e.Status, e.Role, e.AnnualLeaveDays,
		})
	}

	stamp := time.Now().Format("20060102")
	if format == "csv" {
		buf, err := writeCSV(t)
		if err != nil {
			s.logger.Error("csv yazılamadı", zap.Error(err))
			return nil, ErrExportGenerateFail
		}
		return &ExportFile{Buffer: buf, Filename: fmt.Sprintf("calisanlar_%s.csv", stamp), ContentType: ContentTypeCSV}, nil
	}

	buf, err := writeXLSX(t)
	if err != nil {
		s.logger.Error("excel yazılamadı", zap.Error(err))
		return nil, ErrExportGenerateFail
	}
	return &ExportFile{Buffer: buf, Filename: fmt.Sprintf("calisanlar_%s.xlsx", stamp), ContentType: ContentTypeXLSX}, nil
}

// ═══════════════════════════════════════════════════════════
// ExportPayroll dönem bordrosu
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportPayroll(ctx context.Context, year, month int) (*ExportFile, error) {
	if month < 1 || month > 12 || year < 2000 {
		return nil, ErrPayrollPeriodInvalid
	}

	payrolls, _, err := s.repo.Payroll.List(ctx, repository.PayrollFilter{Year: year, Month: month})
	if err != nil {
		s.logger.Error("bordrolar sorgulanamadı", zap.Error(err))
		return nil, err
	}
	if len(payrolls) == 0 {
		return nil, ErrExportNoPayrolls
	}

	t := table{
		title:  fmt.Sprintf("Bordro %02d-%d", month, year),
		header: []string{"Çalışan", "Brüt", "Prim", "SGK İşçi", "İşsizlik", "Gelir Vergisi", "Damga Vergisi", "Kesinti", "Net", "Durum"},
		widths: []float64{26, 14, 12, 12, 12, 14, 14, 12, 14, 12},
	}

	var gross, bonus, sgk, unemp, incomeTax, stamp, deductions, net float64
	for _, p := range payrolls {
		name := p.EmployeeID
		if p.Employee != nil {
			name = p.Employee.FullName()
		}
		t.rows = append(t.rows, []interface{}{
			name, p.GrossSalary, p.Bonus, p.SGKEmployee, p.Unemployment,
			p.IncomeTax, p.StampTax, p.Deductions, p.NetSalary, p.Status,
		})
		gross += p.GrossSalary
		bonus += p.Bonus
		sgk += p.SGKEmployee
		unemp += p.Unemployment
		incomeTax += p.IncomeTax
		stamp += p.StampTax
		deductions += p.Deductions
		net += p.NetSalary
	}
	t.footer = []interface{}{
		"TOPLAM", round2(gross), round2(bonus), round2(sgk), round2(unemp),
		round2(incomeTax), round2(stamp), round2(deductions), round2(net), "",
	}

	buf, err := writeXLSX(t)
	if err != nil {
		s.logger.Error("excel yazılamadı", zap.Error(err))
		return nil, ErrExportGenerateFail
	}
	return &ExportFile{
		Buffer:      buf,
		Filename:    fmt.Sprintf("bordro_%d_%02d.xlsx", year, month),
		ContentType: ContentTypeXLSX,
	}, nil
}

// ── Yazıcılar ──

func writeXLSX(t table) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := t.title
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	for i, w := range t.widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	moneyStyle, _ := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	footerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, NumFmt: 4})

	for i, h := range t.header {
		f.SetCellValue(sheet, cellName(i+1, 1), h)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(t.header))
	f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle)

	row := 2
	for _, r := range t.rows {
		for i, v := range r {
			f.SetCellValue(sheet, cellName(i+1, row), v)
			if _, ok := v.(float64); ok {
				f.SetCellStyle(sheet, cellName(i+1, row), cellName(i+1, row), moneyStyle)
			}
		}
		row++
	}
	if len(t.footer) > 0 {
		for i, v := range t.footer {
			f.SetCellValue(sheet, cellName(i+1, row), v)
		}
		f.SetCellStyle(sheet, cellName(1, row), cellName(len(t.footer), row), footerStyle)
	}

	// Başlık satırı sabit
	f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// writeCSV Excel'in UTF-8 olarak açması için BOM ile başlar
func writeCSV(t table) (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	buf.WriteString("\ufeff")

	w := csv.NewWriter(buf)
	if err := w.Write(t.header); err != nil {
		return nil, err
	}
	for _, r := range t.rows {
		rec := make([]string, len(r))
		for i, v := range r {
			switch val := v.(type) {
			case float64:
				rec[i] = fmt.Sprintf("%.2f", val)
			default:
				rec[i] = fmt.Sprint(val)
			}
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf, w.Error()
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
