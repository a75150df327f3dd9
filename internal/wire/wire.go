package wire

import (
	"Meridian/internal/api"
	"Meridian/internal/api/config"
	"Meridian/internal/api/handler"
	"Meridian/internal/job"
	"Meridian/internal/pkg/cron"
	"Meridian/internal/pkg/minio"
	"Meridian/internal/repository"
	"Meridian/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	CronMgr *cron.Manager
}

func BuildApplication(db *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	contentRepo := repository.NewContentRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)

	assetStore := minio.NewStore()

	mediaService := service.NewMediaService(assetStore)
	contentService := service.NewContentService(contentRepo, mediaService)
	listingService := service.NewListingService(contentRepo, categoryRepo, cfg.Feed)

	handlers := &api.HandlersGroup{
		ContentHandler: handler.NewContentHandler(contentService),
		ListingHandler: handler.NewListingHandler(listingService),
	}

	router := api.SetupRouter(handlers)

	cronMgr := cron.NewCronManager(job.NewAssetCleanupJob(assetStore))

	return &ApplicationContainer{
		Router:  router,
		CronMgr: cronMgr,
	}, nil
}
