package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/handlers"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/middleware"
)

func RegisterTodoRoutes(r gin.IRouter) {
	todo := r.Group("/todo")
	todo.Use(middleware.AuthMiddleware())
	{
		todo.GET("/:partnerId", handlers.GetTodoList)
		todo.POST("/:partnerId/items", handlers.AddTodoItem)
		todo.POST("/:partnerId/items/:itemId/toggle", handlers.ToggleTodoItem)
		todo.DELETE("/:partnerId/items/:itemId", handlers.DeleteTodoItem)
	}
}

func RegisterStoreroomRoutes(r gin.IRouter) {
	storeroom := r.Group("/storeroom")
	storeroom.Use(middleware.AuthMiddleware())
	{
		storeroom.GET("/:partnerId", handlers.GetStoreroom)
		storeroom.POST("/:partnerId/files", handlers.AddStoreroomFile)
		storeroom.DELETE("/:partnerId/files/:fileId", handlers.DeleteStoreroomFile)
	}
}
