package controller

import (
	"strings"

	"ai-note-assistant/internal/dto"
	"ai-note-assistant/internal/pkg/serverutils"
	"ai-note-assistant/pkg/search"
	"ai-note-assistant/pkg/store"

	"github.com/gofiber/fiber/v2"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	Search(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
	Tags(ctx *fiber.Ctx) error
}

type noteController struct {
	notes store.NoteStore
}

func NewNoteController(notes store.NoteStore) INoteController {
	return &noteController{notes: notes}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant/v1")
	h.Get("notes/stats", c.Stats)
	h.Get("notes", c.Search)
	h.Get("tags", c.Tags)
}

// Search accepts q with optional #tag or /tag: tokens, plus an explicit tag param.
func (c *noteController) Search(ctx *fiber.Ctx) error {
	filter := search.ParseQuery(ctx.Query("q"))
	if tag := strings.TrimSpace(ctx.Query("tag")); tag != "" {
		filter.Tag = tag
	}

	notes, err := c.notes.Query(ctx.UserContext(), filter)
	if err != nil {
		return err
	}

	res := dto.SearchNotesResponse{
		Query: filter.Text,
		Tag:   filter.Tag,
		Notes: make([]dto.NoteResponse, 0, len(notes)),
	}
	for _, n := range notes {
		res.Notes = append(res.Notes, dto.NoteResponse{
			Id:           n.ID,
			Title:        n.Title,
			Body:         n.Body,
			Tags:         n.Tags,
			CreatedAt:    n.CreatedAt,
			Score:        n.Score,
			Tier:         string(n.Tier),
			MatchReasons: n.MatchReasons,
		})
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search notes", res))
}

func (c *noteController) Stats(ctx *fiber.Ctx) error {
	stats, err := c.notes.Count(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success count notes", dto.StatsResponse{
		Total:  stats.Total,
		PerTag: stats.PerTag,
	}))
}

func (c *noteController) Tags(ctx *fiber.Ctx) error {
	tags, err := c.notes.ListTags(ctx.UserContext())
	if err != nil {
		return err
	}
	if tags == nil {
		tags = []string{}
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list tags", dto.TagsResponse{Tags: tags}))
}
