package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hr-intelligence/backend/config"
	"hr-intelligence/backend/internal/dto"
	"hr-intelligence/backend/internal/model"
	"hr-intelligence/backend/internal/repository"
)

// ── Belge modülü iş hataları ──

var (
	ErrDocumentNotFound     = errors.New("belge bulunamadı")
	ErrDocumentTooLarge     = errors.New("dosya boyutu sınırı aşıldı")
	ErrDocumentTypeNotAllow = errors.New("bu dosya türü yüklenemez")
	ErrDocumentFileMissing  = errors.New("belge dosyası bulunamadı")
)

// allowedDocumentTypes yüklenebilen MIME türleri
var allowedDocumentTypes = map[string]string{
	"application/pdf":    ".pdf",
	"image/jpeg":         ".jpg",
	"image/png":          ".png",
	"text/plain":         ".txt",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":       ".xlsx",
}

// employeeUploadCategories çalışanın kendisi için yükleyebileceği kategoriler
var employeeUploadCategories = map[string]bool{
	model.DocumentCategoryCertificate: true,
	model.DocumentCategoryIdentity:    true,
	model.DocumentCategoryOther:       true,
}

// UploadInput yüklenen dosya
type UploadInput struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// DocumentService belge iş arayüzü
type DocumentService interface {
	Upload(ctx context.Context, req *dto.UploadDocumentRequest, file UploadInput, caller Caller) (*dto.DocumentResponse, error)
	List(ctx context.Context, req *dto.DocumentListRequest, caller Caller) ([]dto.DocumentResponse, int64, error)
	GetByID(ctx context.Context, id string, caller Caller) (*dto.DocumentResponse, error)
	// Open indirme için belge kaydını ve diskteki yolunu döner
	Open(ctx context.Context, id string, caller Caller) (*model.Document, string, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type documentService struct {
	repo      *repository.Repository
	uploadDir string
	maxBytes  int64
	logger    *zap.Logger
}

// NewDocumentService DocumentService örneği oluşturur; yükleme dizini yoksa oluşturulur
func NewDocumentService(cfg *config.ServerConfig, repo *repository.Repository, logger *zap.Logger) (DocumentService, error) {
	if err := os.MkdirAll(cfg.UploadDir, 0o750); err != nil {
		return nil, fmt.Errorf("yükleme dizini oluşturulamadı: %w", err)
	}
	return &documentService{
		repo:      repo,
		uploadDir: cfg.UploadDir,
		maxBytes:  cfg.MaxUploadMB * 1024 * 1024,
		logger:    logger,
	}, nil
}

// ────────────────────── Upload ──────────────────────

func (s *documentService) Upload(ctx context.Context, req *dto.UploadDocumentRequest, file UploadInput, caller Caller) (*dto.DocumentResponse, error) {
	if file.Size > s.maxBytes {
		return nil, ErrDocumentTooLarge
	}

	var ownerID *string
	if req.Category != model.DocumentCategoryPolicy {
		owner := req.EmployeeID
		if owner == "" {
			owner = caller.EmployeeID
		}
		ownerID = &owner
	}
	if !caller.IsHR() {
		if ownerID == nil || *ownerID != caller.EmployeeID || !employeeUploadCategories[req.Category] {
			return nil, ErrNoPermission
		}
	}
	if ownerID != nil && *ownerID != caller.EmployeeID {
		if _, err := s.repo.Employee.GetByID(ctx, *ownerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrEmployeeNotFound
			}
			return nil, err
		}
	}

	// İçerik türü başlıktan değil dosyanın ilk baytlarından belirlenir
	head := make([]byte, 512)
	n, err := io.ReadFull(file.Reader, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	head = head[:n]
	mimeType := detectMime(head, file.ContentType)
	ext, ok := allowedDocumentTypes[mimeType]
	if !ok {
		return nil, ErrDocumentTypeNotAllow
	}

	storageName := uuid.New().String() + ext
	destPath := filepath.Join(s.uploadDir, storageName)
	dest, err := os.OpenFile(destPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o640)
	if err != nil {
		s.logger.Error("belge dosyası oluşturulamadı", zap.Error(err))
		return nil, err
	}

	// Bildirilen boyut yanlış olabilir; sınır okuma sırasında da uygulanır
	body := io.MultiReader(bytes.NewReader(head), file.Reader)
	written, err := io.Copy(dest, io.LimitReader(body, s.maxBytes+1))
	closeErr := dest.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(destPath)
		s.logger.Error("belge dosyası yazılamadı", zap.Error(err))
		return nil, err
	}
	if written > s.maxBytes {
		os.Remove(destPath)
		return nil, ErrDocumentTooLarge
	}

	doc := &model.Document{
		EmployeeID:  ownerID,
		Title:       strings.TrimSpace(req.Title),
		Category:    req.Category,
		FileName:    sanitizeFilename(file.Filename),
		StorageName: storageName,
		MimeType:    mimeType,
		SizeBytes:   written,
	}
	doc.Audit(caller.EmployeeID)

	if err := s.repo.Document.Create(ctx, doc); err != nil {
		os.Remove(destPath)
		s.logger.Error("belge kaydı oluşturulamadı", zap.Error(err))
		return nil, err
	}

	resp := toDocumentResponse(doc)
	return &resp, nil
}

// ────────────────────── List / Get ──────────────────────

// List çalışan kendi belgelerini ve şirket politikalarını görür
func (s *documentService) List(ctx context.Context, req *dto.DocumentListRequest, caller Caller) ([]dto.DocumentResponse, int64, error) {
	filter := repository.DocumentFilter{
		EmployeeID: req.EmployeeID,
		Category:   req.Category,
		Offset:     req.GetOffset(),
		Limit:      req.GetPageSize(),
	}
	if !caller.IsHR() {
		filter.EmployeeID = ""
		filter.VisibleTo = caller.EmployeeID
	}

	docs, total, err := s.repo.Document.List(ctx, filter)
	if err != nil {
		s.logger.Error("belgeler listelenemedi", zap.Error(err))
		return nil, 0, err
	}

	list := make([]dto.DocumentResponse, 0, len(docs))
	for i := range docs {
		list = append(list, toDocumentResponse(&docs[i]))
	}
	return list, total, nil
}

func (s *documentService) GetByID(ctx context.Context, id string, caller Caller) (*dto.DocumentResponse, error) {
	doc, err := s.visible(ctx, id, caller)
	if err != nil {
		return nil, err
	}
	resp := toDocumentResponse(doc)
	return &resp, nil
}

func (s *documentService) Open(ctx context.Context, id string, caller Caller) (*model.Document, string, error) {
	doc, err := s.visible(ctx, id, caller)
	if err != nil {
		return nil, "", err
	}
	path := filepath.Join(s.uploadDir, doc.StorageName)
	if _, err := os.Stat(path); err != nil {
		s.logger.Error("belge dosyası diskte yok", zap.String("id", id), zap.String("path", path), zap.Error(err))
		return nil, "", ErrDocumentFileMissing
	}
	return doc, path, nil
}

// ────────────────────── Delete ──────────────────────

func (s *documentService) Delete(ctx context.Context, id string, callerID string) error {
	doc, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Document.Delete(ctx, id, callerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDocumentNotFound
		}
		s.logger.Error("belge silinemedi", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := os.Remove(filepath.Join(s.uploadDir, doc.StorageName)); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("belge dosyası silinemedi", zap.String("id", id), zap.Error(err))
	}
	return nil
}

// ── İç yardımcılar ──

func (s *documentService) get(ctx context.Context, id string) (*model.Document, error) {
	doc, err := s.repo.Document.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		s.logger.Error("belge sorgulanamadı", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return doc, nil
}

func (s *documentService) visible(ctx context.Context, id string, caller Caller) (*model.Document, error) {
	doc, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller.IsHR() || doc.Category == model.DocumentCategoryPolicy {
		return doc, nil
	}
	if doc.EmployeeID == nil || *doc.EmployeeID != caller.EmployeeID {
		return nil, ErrNoPermission
	}
	return doc, nil
}

// detectMime dosya içeriğinden tür belirler. Office belgeleri zip olarak algılandığından
// bu durumda istemcinin bildirdiği tür kabul edilir.
func detectMime(head []byte, declared string) string {
	detected := strings.TrimSpace(strings.Split(http.DetectContentType(head), ";")[0])
	declared = strings.TrimSpace(strings.Split(declared, ";")[0])

	switch detected {
	case "application/zip":
		if strings.HasPrefix(declared, "application/vnd.openxmlformats-officedocument.") {
			return declared
		}
	case "application/octet-stream":
		if declared == "application/msword" {
			return declared
		}
	}
	return detected
}

// sanitizeFilename dizin bileşenlerini ve kontrol karakterlerini temizler
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		if r == '/' || r == '\x00' || r < 0x20 {
			return -1
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." {
		name = "belge"
	}
	return name
}

func toDocumentResponse(d *model.Document) dto.DocumentResponse {
	return dto.DocumentResponse{
		ID:         d.DocumentID,
		EmployeeID: derefString(d.EmployeeID),
		Title:      d.Title,
		Category:   d.Category,
		FileName:   d.FileName,
		MimeType:   d.MimeType,
		SizeBytes:  d.SizeBytes,
		CreatedAt:  formatTime(d.CreatedAt),
	}
}
