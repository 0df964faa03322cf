package backend

import (
	"vincit.fi/gallery-thumbs/api"
	"vincit.fi/gallery-thumbs/backend/internal/codec"
	"vincit.fi/gallery-thumbs/backend/internal/database"
	"vincit.fi/gallery-thumbs/backend/internal/library"
	"vincit.fi/gallery-thumbs/backend/internal/thumbnail"
	"vincit.fi/gallery-thumbs/backend/internal/util"
	"vincit.fi/gallery-thumbs/common"
	"vincit.fi/gallery-thumbs/common/event"
	"vincit.fi/gallery-thumbs/common/logger"
)

type Stores struct {
	BatchStore     *database.BatchStore
	ThumbnailStore *database.ThumbnailStore
	catalogDb      *database.Database
}

func (s *Stores) Close() {
	s.catalogDb.Close()
}

type Services struct {
	Codec          *codec.Codec
	Generator      *thumbnail.Generator
	LibraryService *library.Service
}

type Brokers struct {
	Broker *event.Broker
}

func InitializeEventBrokers(eventBusQueueSize int) *Brokers {
	logger.Debug.Printf("Initialize event brokers...")
	brokers := &Brokers{
		Broker: event.InitBus(eventBusQueueSize),
	}
	logger.Debug.Printf("Event brokers initialized")
	return brokers
}

// InitializeStores opens the thumbnail catalog at dbPath.
func InitializeStores(dbPath string) (*Stores, error) {
	logger.Debug.Printf("Initialize databases...")
	catalogDb := database.NewDatabase()
	if err := catalogDb.Open(dbPath); err != nil {
		logger.Error.Print("Error opening database ", err)
		return nil, err
	}

	logger.Debug.Printf("Initialize backend stores...")
	stores := &Stores{
		BatchStore:     database.NewBatchStore(catalogDb),
		ThumbnailStore: database.NewThumbnailStore(catalogDb),
		catalogDb:      catalogDb,
	}
	logger.Debug.Printf("Stores and databases initialized")
	return stores, nil
}

// InitializeCodec is enough for the commands that only convert single files.
func InitializeCodec(params *common.Params) *codec.Codec {
	return codec.NewCodec(params.JpegQuality(), params.AutoOrient())
}

func InitializeServices(params *common.Params, stores *Stores, brokers *Brokers) *Services {
	logger.Debug.Printf("Initialize services...")
	imageCodec := InitializeCodec(params)
	progressObserver := api.NewSenderProgressObserver(brokers.Broker)
	generator := thumbnail.NewGenerator(imageCodec, params.Concurrency(), progressObserver)
	generator.SetExtensions(params.SourceExt(), params.ThumbExt())

	services := &Services{
		Codec:     imageCodec,
		Generator: generator,
		LibraryService: library.NewService(
			generator,
			util.NewDirectoryProvisioner(params.RootPath()),
			stores.BatchStore,
			stores.ThumbnailStore,
			brokers.Broker),
	}
	logger.Debug.Printf("Services initialized")
	return services
}

func (s *Services) GenerateThumbnails(params *common.Params) (*library.Report, error) {
	return s.LibraryService.GenerateForDirectory(toRequest(params))
}

// StartGallery brings the thumbnails up to date in the background and builds
// the gallery index once they are done.
func (s *Services) StartGallery(params *common.Params) *library.Startup {
	startup := library.NewStartup(s.LibraryService)
	startup.Start(toRequest(params))
	return startup
}

func toRequest(params *common.Params) *library.Request {
	return &library.Request{
		InputDir:  params.RootPath(),
		OutputDir: params.OutputDir(),
		SourceExt: params.SourceExt(),
		ThumbExt:  params.ThumbExt(),
		Bound:     params.Bound(),
		Force:     params.Force(),
	}
}
