package config

type StorageConfig struct {
	Provider        string `yaml:"provider"` // s3, gcs, local
	Region          string `yaml:"region"`
	Bucket          string `yaml:"bucket"`
	CDNDomain       string `yaml:"cdn_domain"`
	CredentialsFile string `yaml:"credentials_file"`
	LocalPath       string `yaml:"local_path"`
	LocalBaseURL    string `yaml:"local_base_url"`
}

func loadStorageConfig() *StorageConfig {
	return &StorageConfig{
		Provider:        getEnv("STORAGE_PROVIDER", "local"),
		Region:          getEnv("STORAGE_REGION", "us-east-1"),
		Bucket:          getEnv("STORAGE_BUCKET", "lazymint-assets"),
		CDNDomain:       getEnv("STORAGE_CDN_DOMAIN", ""),
		CredentialsFile: getEnv("STORAGE_CREDENTIALS_FILE", ""),
		LocalPath:       getEnv("STORAGE_LOCAL_PATH", "./data/storage"),
		LocalBaseURL:    getEnv("STORAGE_LOCAL_BASE_URL", "http://localhost:8080/files"),
	}
}
