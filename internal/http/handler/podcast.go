package handler

import (
	"github.com/gofiber/fiber/v2"

	"wellnessapi/internal/model"
	"wellnessapi/internal/service"
)

// PodcastSeriesHandler exposes the podcast show collection.
type PodcastSeriesHandler struct {
	svc service.PodcastSeriesService
}

func NewPodcastSeriesHandler(svc service.PodcastSeriesService) *PodcastSeriesHandler {
	return &PodcastSeriesHandler{svc: svc}
}

func (h *PodcastSeriesHandler) List(c *fiber.Ctx) error {
	limit, offset, err := pagination(c)
	if err != nil {
		return err
	}
	res, err := h.svc.List(c.UserContext(), limit, offset)
	if err != nil {
		return fail(c, err)
	}
	return okList(c, res)
}

func (h *PodcastSeriesHandler) Get(c *fiber.Ctx) error {
	ps, err := h.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, ps)
}

func (h *PodcastSeriesHandler) GetBySlug(c *fiber.Ctx) error {
	ps, err := h.svc.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, ps)
}

func (h *PodcastSeriesHandler) Create(c *fiber.Ctx) error {
	f := parseForm(c)
	defer f.close()

	publishDate, err := f.date("publishDate")
	if err != nil {
		return fail(c, err)
	}
	cover, err := f.file("coverImage")
	if err != nil {
		return fail(c, err)
	}

	ps, err := h.svc.Create(c.UserContext(), service.CreatePodcastSeriesInput{
		Title:       f.str("title"),
		Description: f.str("description"),
		Category:    f.str("category"),
		PublishDate: publishDate,
		CoverImage:  cover,
	})
	if err != nil {
		return fail(c, err)
	}
	return created(c, ps)
}

func (h *PodcastSeriesHandler) Update(c *fiber.Ctx) error {
	f := parseForm(c)
	defer f.close()

	publishDate, err := f.datePtr("publishDate")
	if err != nil {
		return fail(c, err)
	}
	cover, err := f.file("coverImage")
	if err != nil {
		return fail(c, err)
	}

	ps, err := h.svc.Update(c.UserContext(), c.Params("id"), service.UpdatePodcastSeriesInput{
		Title:       f.strPtr("title"),
		Description: f.strPtr("description"),
		Category:    f.strPtr("category"),
		PublishDate: publishDate,
		CoverImage:  cover,
	})
	if err != nil {
		return fail(c, err)
	}
	return ok(c, ps)
}

func (h *PodcastSeriesHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"deleted": true})
}

// PodcastEpisodeHandler exposes the episode collection. Listing accepts an
// optional seriesId filter.
type PodcastEpisodeHandler struct {
	svc service.PodcastEpisodeService
}

func NewPodcastEpisodeHandler(svc service.PodcastEpisodeService) *PodcastEpisodeHandler {
	return &PodcastEpisodeHandler{svc: svc}
}

func (h *PodcastEpisodeHandler) List(c *fiber.Ctx) error {
	limit, offset, err := pagination(c)
	if err != nil {
		return err
	}

	var res *service.ListResult[model.PodcastEpisode]
	if seriesID := c.Query("seriesId"); seriesID != "" {
		res, err = h.svc.ListBySeries(c.UserContext(), seriesID, limit, offset)
	} else {
		res, err = h.svc.List(c.UserContext(), limit, offset)
	}
	if err != nil {
		return fail(c, err)
	}
	return okList(c, res)
}

func (h *PodcastEpisodeHandler) Get(c *fiber.Ctx) error {
	ep, err := h.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, ep)
}

func (h *PodcastEpisodeHandler) GetBySlug(c *fiber.Ctx) error {
	ep, err := h.svc.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, ep)
}

func (h *PodcastEpisodeHandler) Create(c *fiber.Ctx) error {
	f := parseForm(c)
	defer f.close()

	episodeNumber, err := f.int("episodeNumber")
	if err != nil {
		return fail(c, err)
	}
	publishDate, err := f.date("publishDate")
	if err != nil {
		return fail(c, err)
	}
	thumbnail, err := f.file("thumbnail")
	if err != nil {
		return fail(c, err)
	}

	ep, err := h.svc.Create(c.UserContext(), service.CreatePodcastEpisodeInput{
		SeriesID:      f.str("podcastSeriesId"),
		Title:         f.str("title"),
		Description:   f.str("description"),
		YouTubeLink:   f.str("youtubeLink"),
		Duration:      f.str("duration"),
		EpisodeNumber: episodeNumber,
		PublishDate:   publishDate,
		Thumbnail:     thumbnail,
	})
	if err != nil {
		return fail(c, err)
	}
	return created(c, ep)
}

func (h *PodcastEpisodeHandler) Update(c *fiber.Ctx) error {
	f := parseForm(c)
	defer f.close()

	episodeNumber, err := f.intPtr("episodeNumber")
	if err != nil {
		return fail(c, err)
	}
	publishDate, err := f.datePtr("publishDate")
	if err != nil {
		return fail(c, err)
	}
	thumbnail, err := f.file("thumbnail")
	if err != nil {
		return fail(c, err)
	}

	ep, err := h.svc.Update(c.UserContext(), c.Params("id"), service.UpdatePodcastEpisodeInput{
		Title:         f.strPtr("title"),
		Description:   f.strPtr("description"),
		YouTubeLink:   f.strPtr("youtubeLink"),
		Duration:      f.strPtr("duration"),
		EpisodeNumber: episodeNumber,
		PublishDate:   publishDate,
		Thumbnail:     thumbnail,
	})
	if err != nil {
		return fail(c, err)
	}
	return ok(c, ep)
}

func (h *PodcastEpisodeHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"deleted": true})
}
