package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/receitaro/data/recipes.db"
	}
	if cfg.Search.MaxResults == 0 {
		cfg.Search.MaxResults = 50
	}
	if cfg.Search.MinScore == 0 {
		cfg.Search.MinScore = 0.1
	}
	if cfg.Search.CacheTTLSeconds == 0 {
		cfg.Search.CacheTTLSeconds = 300
	}
	if cfg.Search.TitleBoost == 0 {
		cfg.Search.TitleBoost = 3
	}
	if cfg.Search.DescriptionBoost == 0 {
		cfg.Search.DescriptionBoost = 1
	}
	if cfg.Search.IngredientsBoost == 0 {
		cfg.Search.IngredientsBoost = 2
	}
	if cfg.Search.TagsBoost == 0 {
		cfg.Search.TagsBoost = 1.5
	}
	if cfg.Watch.Extensions == nil {
		cfg.Watch.Extensions = []string{".json", ".xlsx"}
	}
}
