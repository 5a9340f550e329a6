package implementation

import (
	"context"
	"errors"

	"ai-note-assistant/internal/entity"
	"ai-note-assistant/internal/mapper"
	"ai-note-assistant/internal/model"
	"ai-note-assistant/internal/repository/contract"
	"ai-note-assistant/internal/repository/specification"
	"ai-note-assistant/pkg/store"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type NoteRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NoteMapper
}

func NewNoteRepository(db *gorm.DB) contract.NoteRepository {
	return &NoteRepositoryImpl{
		db:     db,
		mapper: mapper.NewNoteMapper(),
	}
}

func (r *NoteRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *NoteRepositoryImpl) Create(ctx context.Context, note *entity.Note) error {
	m := r.mapper.ToModel(note)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*note = *r.mapper.ToEntity(m)
	return nil
}

func (r *NoteRepositoryImpl) UpdateTags(ctx context.Context, id uuid.UUID, tags []string) error {
	res := r.db.WithContext(ctx).
		Model(&model.Note{}).
		Where("id = ?", id).
		Update("tags", datatypes.JSONSlice[string](tags))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNoteNotFound
	}
	return nil
}

func (r *NoteRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	var m model.Note
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *NoteRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	var models []*model.Note
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *NoteRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Note{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

type tagUsage struct {
	Tag   string
	Total int64
}

func (r *NoteRepositoryImpl) tagUsage(ctx context.Context) ([]tagUsage, error) {
	var rows []tagUsage
	err := r.db.WithContext(ctx).Raw(`
		SELECT t.tag AS tag, COUNT(*) AS total
		FROM notes, jsonb_array_elements_text(notes.tags) AS t(tag)
		GROUP BY t.tag
		ORDER BY total DESC, t.tag ASC`).Scan(&rows).Error
	return rows, err
}

func (r *NoteRepositoryImpl) CountByTag(ctx context.Context) (map[string]int64, error) {
	rows, err := r.tagUsage(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Tag] = row.Total
	}
	return counts, nil
}

func (r *NoteRepositoryImpl) DistinctTags(ctx context.Context) ([]string, error) {
	rows, err := r.tagUsage(ctx)
	if err != nil {
		return nil, err
	}
	tags := make([]string, len(rows))
	for i, row := range rows {
		tags[i] = row.Tag
	}
	return tags, nil
}
