package controller

import (
	"github.com/gofiber/fiber/v2"

	"propsite_backend/pkg/catalog"
)

func ListArticles(c *fiber.Ctx) error {
	articles := catalog.Default.Articles(c.Query("category"))
	return c.JSON(fiber.Map{
		"articles": articles,
		"total":    len(articles),
	})
}

func ListArticleCategories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"categories": catalog.Default.ArticleCategories(),
	})
}

func GetArticleBySlug(c *fiber.Ctx) error {
	article, ok := catalog.Default.ArticleBySlug(c.Params("slug"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Article not found",
		})
	}
	return c.JSON(article)
}

func ListServices(c *fiber.Ctx) error {
	services := catalog.Default.Services(c.Query("category"))
	return c.JSON(fiber.Map{
		"services": services,
		"total":    len(services),
	})
}

func GetServiceBySlug(c *fiber.Ctx) error {
	service, ok := catalog.Default.ServiceBySlug(c.Params("slug"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}
	return c.JSON(service)
}
