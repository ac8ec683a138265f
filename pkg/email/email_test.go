package email

import (
	"context"
	"strings"
	"testing"
)

func TestRenderHTML_EscapesContent(t *testing.T) {
	out := renderHTML("İzin <onay>", "Merhaba & hoş geldiniz")
	if strings.Contains(out, "<onay>") {
		t.Error("başlık HTML kaçışından geçmeliydi")
	}
	if !strings.Contains(out, "Merhaba &amp; hoş geldiniz") {
		t.Error("gövde metni kaçışlı olarak yer almalı")
	}
}

func TestNopSender(t *testing.T) {
	var s Sender = NopSender{}
	if err := s.Send(context.Background(), "a@b.com", "konu", "gövde"); err != nil {
		t.Errorf("NopSender hata dönmemeli: %v", err)
	}
}
