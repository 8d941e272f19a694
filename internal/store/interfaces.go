package store

import (
	"context"

	"github.com/MKhiriev/go-app-state-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock -exclude_interfaces=ErrorClassificator

// ErrorClassificator decides whether a failed database operation may be
// retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// PatchLogRepository: серверный журнал патчей одного аккаунта.
// Сервер не знает ключей: он хранит патчи как есть и поддерживает
// набор живых записей, из которого собираются снапшоты.
type PatchLogRepository interface {
	// Head возвращает последнюю версию коллекции. Для пустой коллекции
	// версия равна 0, ошибки нет.
	Head(ctx context.Context, accountID string, collection models.Collection) (models.LogHead, error)

	// Append атомарно добавляет патч, если его версия ровно на единицу
	// больше текущей головы, иначе возвращает ErrVersionConflict.
	Append(ctx context.Context, entry models.LogAppend) error

	// PatchesAfter возвращает не более limit патчей с версией > after,
	// по возрастанию версии.
	PatchesAfter(ctx context.Context, accountID string, collection models.Collection, after, limit uint64) ([]models.Patch, error)

	// LiveRecords возвращает все живые записи коллекции.
	LiveRecords(ctx context.Context, accountID string, collection models.Collection) ([]models.MutationRecord, error)
}

// BlobStorage keeps encrypted blobs addressed by an opaque path.
type BlobStorage interface {
	Put(ctx context.Context, data []byte) (string, error)
	Get(ctx context.Context, path string) ([]byte, error)
}
