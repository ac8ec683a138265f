package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"hr-intelligence/backend/internal/dto"
	"hr-intelligence/backend/internal/model"
	"hr-intelligence/backend/internal/realtime"
)

func setupTestMessageService() (MessageService, *testRepos, *recordingPublisher) {
	repo, mocks := newTestRepository()
	pub := newRecordingPublisher()
	mocks.employee.emps["emp-1"] = &model.Employee{EmployeeID: "emp-1", FirstName: "Mehmet", LastName: "Yılmaz", Status: model.EmployeeStatusActive}
	mocks.employee.emps["emp-2"] = &model.Employee{EmployeeID: "emp-2", FirstName: "Zeynep", LastName: "Demir", Status: model.EmployeeStatusActive}
	mocks.employee.emps["emp-gone"] = &model.Employee{EmployeeID: "emp-gone", FirstName: "Eski", LastName: "Çalışan", Status: model.EmployeeStatusTerminated}
	return NewMessageService(repo, pub, zap.NewNop()), mocks, pub
}

func sendTestMessage(t *testing.T, svc MessageService) *dto.MessageResponse {
	t.Helper()
	resp, err := svc.Send(context.Background(), &dto.SendMessageRequest{
		RecipientID: "emp-2",
		Subject:     "  Toplantı ",
		Body:        "Yarın 10:00'da toplantı var.",
	}, "emp-1")
	if err != nil {
		t.Fatalf("mesaj gönderilemedi: %v", err)
	}
	return resp
}

func TestMessageService_Send_PublishesEvent(t *testing.T) {
	svc, _, pub := setupTestMessageService()

	resp := sendTestMessage(t, svc)
	if resp.Subject != "Toplantı" {
		t.Errorf("Subject = %q", resp.Subject)
	}
	if resp.Sender == nil || resp.Sender.Name != "Mehmet Yılmaz" {
		t.Errorf("gönderen bilgisi eksik: %+v", resp.Sender)
	}

	events := pub.events["emp-2"]
	if len(events) != 1 || events[0].Type != realtime.EventMessageCreated {
		t.Errorf("alıcıya message.created olayı gitmeli: %+v", events)
	}
	if len(pub.events["emp-1"]) != 0 {
		t.Error("gönderene olay gitmemeli")
	}
}

func TestMessageService_Send_Errors(t *testing.T) {
	svc, _, _ := setupTestMessageService()

	tests := []struct {
		name      string
		recipient string
		want      error
	}{
		{"kendine", "emp-1", ErrMessageToSelf},
		{"olmayan alıcı", "emp-yok", ErrRecipientNotFound},
		{"ayrılmış çalışan", "emp-gone", ErrRecipientUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Send(context.Background(), &dto.SendMessageRequest{
				RecipientID: tt.recipient, Subject: "Konu", Body: "İçerik",
			}, "emp-1")
			if !errors.Is(err, tt.want) {
				t.Errorf("%v bekleniyordu, alınan: %v", tt.want, err)
			}
		})
	}
}

func TestMessageService_Get_MarksRead(t *testing.T) {
	svc, _, _ := setupTestMessageService()
	ctx := context.Background()
	sent := sendTestMessage(t, svc)

	if n, _ := svc.UnreadCount(ctx, "emp-2"); n != 1 {
		t.Fatalf("okunmamış = %d, beklenen 1", n)
	}

	// gönderenin açması okundu yapmaz
	bySender, err := svc.Get(ctx, sent.ID, "emp-1")
	if err != nil {
		t.Fatalf("gönderen okuyamadı: %v", err)
	}
	if bySender.IsRead {
		t.Error("gönderen açınca okundu işaretlenmemeli")
	}

	byRecipient, err := svc.Get(ctx, sent.ID, "emp-2")
	if err != nil {
		t.Fatalf("alıcı okuyamadı: %v", err)
	}
	if !byRecipient.IsRead || byRecipient.ReadAt == "" {
		t.Error("alıcı açınca okundu işaretlenmeli")
	}
	if n, _ := svc.UnreadCount(ctx, "emp-2"); n != 0 {
		t.Errorf("okunmamış = %d, beklenen 0", n)
	}
}

func TestMessageService_Get_NonParticipant(t *testing.T) {
	svc, mocks, _ := setupTestMessageService()
	mocks.employee.emps["emp-3"] = &model.Employee{EmployeeID: "emp-3", Status: model.EmployeeStatusActive}
	sent := sendTestMessage(t, svc)

	if _, err := svc.Get(context.Background(), sent.ID, "emp-3"); !errors.Is(err, ErrNoPermission) {
		t.Errorf("ErrNoPermission bekleniyordu, alınan: %v", err)
	}
	if _, err := svc.Get(context.Background(), "msg-yok", "emp-1"); !errors.Is(err, ErrMessageNotFound) {
		t.Errorf("ErrMessageNotFound bekleniyordu, alınan: %v", err)
	}
}

func TestMessageService_Delete_HidesOnlyForCaller(t *testing.T) {
	svc, _, _ := setupTestMessageService()
	ctx := context.Background()
	sent := sendTestMessage(t, svc)
	page := &dto.PaginationRequest{}

	if err := svc.Delete(ctx, sent.ID, "emp-2"); err != nil {
		t.Fatalf("silme hatası: %v", err)
	}

	inbox, total, _ := svc.Inbox(ctx, "emp-2", page)
	if total != 0 || len(inbox) != 0 {
		t.Errorf("alıcının gelen kutusu boş olmalı, alınan %d", total)
	}
	outbox, total, _ := svc.Sent(ctx, "emp-1", page)
	if total != 1 || len(outbox) != 1 {
		t.Errorf("gönderenin kutusunda kalmalı, alınan %d", total)
	}
	if _, err := svc.Get(ctx, sent.ID, "emp-2"); !errors.Is(err, ErrMessageNotFound) {
		t.Errorf("silinen mesaj alıcıya görünmemeli: %v", err)
	}
}
