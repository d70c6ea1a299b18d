package artifactory

import (
	"github.com/party-go/party/party-client-go/services/artifactory/utils"
)

const (
	StorageApi     = "storage"
	StorageInfoApi = "storageinfo"
)

type StorageService struct {
	requester *utils.Requester
}

func NewStorageService(requester *utils.Requester) *StorageService {
	return &StorageService{requester: requester}
}

type Checksums struct {
	Sha1   string `json:"sha1,omitempty"`
	Md5    string `json:"md5,omitempty"`
	Sha256 string `json:"sha256,omitempty"`
}

// FileInfo is the General tab of an artifact.
type FileInfo struct {
	Uri               string    `json:"uri,omitempty"`
	DownloadUri       string    `json:"downloadUri,omitempty"`
	Repo              string    `json:"repo,omitempty"`
	Path              string    `json:"path,omitempty"`
	RemoteUrl         string    `json:"remoteUrl,omitempty"`
	Created           string    `json:"created,omitempty"`
	CreatedBy         string    `json:"createdBy,omitempty"`
	LastModified      string    `json:"lastModified,omitempty"`
	ModifiedBy        string    `json:"modifiedBy,omitempty"`
	LastUpdated       string    `json:"lastUpdated,omitempty"`
	Size              string    `json:"size,omitempty"`
	MimeType          string    `json:"mimeType,omitempty"`
	Checksums         Checksums `json:"checksums,omitempty"`
	OriginalChecksums Checksums `json:"originalChecksums,omitempty"`
}

type FileStats struct {
	Uri                  string `json:"uri,omitempty"`
	DownloadCount        int64  `json:"downloadCount"`
	LastDownloaded       int64  `json:"lastDownloaded"`
	LastDownloadedBy     string `json:"lastDownloadedBy,omitempty"`
	RemoteDownloadCount  int64  `json:"remoteDownloadCount"`
	RemoteLastDownloaded int64  `json:"remoteLastDownloaded"`
}

type BinariesSummary struct {
	BinariesCount  string `json:"binariesCount,omitempty"`
	BinariesSize   string `json:"binariesSize,omitempty"`
	ArtifactsSize  string `json:"artifactsSize,omitempty"`
	Optimization   string `json:"optimization,omitempty"`
	ItemsCount     string `json:"itemsCount,omitempty"`
	ArtifactsCount string `json:"artifactsCount,omitempty"`
}

type RepositorySummary struct {
	RepoKey      string `json:"repoKey,omitempty"`
	RepoType     string `json:"repoType,omitempty"`
	FoldersCount int64  `json:"foldersCount"`
	FilesCount   int64  `json:"filesCount"`
	UsedSpace    string `json:"usedSpace,omitempty"`
	ItemsCount   int64  `json:"itemsCount"`
	PackageType  string `json:"packageType,omitempty"`
	Percentage   string `json:"percentage,omitempty"`
}

type StorageInfo struct {
	BinariesSummary         BinariesSummary        `json:"binariesSummary"`
	FileStoreSummary        map[string]interface{} `json:"fileStoreSummary,omitempty"`
	RepositoriesSummaryList []RepositorySummary    `json:"repositoriesSummaryList,omitempty"`
}

// GetFileInfo reads the storage details of filename, a "<repo>/<path>" relative to the storage API.
func (ss *StorageService) GetFileInfo(filename string) (*FileInfo, error) {
	info := &FileInfo{}
	if err := ss.requester.GetJson(StorageApi+"/"+filename, info); err != nil {
		return nil, err
	}
	return info, nil
}

func (ss *StorageService) GetFileStats(filename string) (*FileStats, error) {
	stats := &FileStats{}
	if err := ss.requester.GetJson(StorageApi+"/"+filename+"?stats", stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (ss *StorageService) GetStorageInfo() (*StorageInfo, error) {
	info := &StorageInfo{}
	if err := ss.requester.GetJson(StorageInfoApi, info); err != nil {
		return nil, err
	}
	return info, nil
}
