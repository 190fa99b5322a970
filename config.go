package macromentor

// PlannerConfig configures the one-shot planner CLI.
type PlannerConfig struct {
	CatalogPath     string `env:"CATALOG_PATH,default=artifacts/foods.json"`
	ExportPath      string `env:"EXPORT_PATH,default=meal_plan.csv"`
	SlackWebhookURL string `env:"SLACK_WEBHOOK_URL"`
	SlackChannel    string `env:"SLACK_CHANNEL,default=#nutrition"`
	StepLog         bool   `env:"STEP_LOG,default=false"`
}

// ServerConfig configures the HTTP API. CatalogDB takes precedence over
// CatalogPath when set.
type ServerConfig struct {
	ListenAddr  string `env:"LISTEN_ADDR,default=:5000"`
	CatalogPath string `env:"CATALOG_PATH,default=artifacts/foods.json"`
	CatalogDB   string `env:"CATALOG_DB"`
}

// CatalogS3Config locates the catalog object for the Lambda handler.
type CatalogS3Config struct {
	Bucket string `env:"CATALOG_S3_BUCKET,required"`
	Key    string `env:"CATALOG_S3_KEY,default=foods.json"`
}
