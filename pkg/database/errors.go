package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrDuplicate benzersizlik kısıtı ihlali (23505)
	ErrDuplicate = errors.New("aynı benzersiz değere sahip kayıt zaten var")
	// ErrInvalidReference yabancı anahtar ihlali (23503)
	ErrInvalidReference = errors.New("geçersiz ilişkili kayıt referansı")
)

// MapError PostgreSQL kısıt hatalarını alan hatalarına çevirir; diğer hatalar aynen döner.
func MapError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ErrDuplicate
		case "23503":
			return ErrInvalidReference
		}
	}
	return err
}
