// Package drive synchronizes the portfolio files with a dedicated
// folder on the user's Google Drive. Files keep their local names; one
// folder holds everything so the account's other content is never
// touched.
package drive

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	driveapi "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// FolderName is the Drive folder holding the portfolio files.
const FolderName = "AInvestool"

const folderMimeType = "application/vnd.google-apps.folder"

// OAuthConfig builds the OAuth2 configuration for the Drive scope that
// only reaches files this application created.
func OAuthConfig(clientID, clientSecret string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{driveapi.DriveFileScope},
		RedirectURL:  "urn:ietf:wg:oauth:2.0:oob",
	}
}

// Store reads and writes files in the application folder.
type Store struct {
	service  *driveapi.Service
	folderID string
}

// NewStore connects to Drive with the given token and ensures the
// application folder exists.
func NewStore(ctx context.Context, config *oauth2.Config, token *oauth2.Token) (*Store, error) {
	client := config.Client(ctx, token)
	service, err := driveapi.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("could not connect to drive: %w", err)
	}
	s := &Store{service: service}
	if err := s.ensureFolder(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureFolder() error {
	query := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false", FolderName, folderMimeType)
	list, err := s.service.Files.List().Q(query).Fields("files(id)").Do()
	if err != nil {
		return fmt.Errorf("could not look up folder %q: %w", FolderName, err)
	}
	if len(list.Files) > 0 {
		s.folderID = list.Files[0].Id
		return nil
	}
	folder, err := s.service.Files.Create(&driveapi.File{
		Name:     FolderName,
		MimeType: folderMimeType,
	}).Fields("id").Do()
	if err != nil {
		return fmt.Errorf("could not create folder %q: %w", FolderName, err)
	}
	s.folderID = folder.Id
	return nil
}

// fileID returns the id of a named file in the folder, "" if absent.
func (s *Store) fileID(name string) (string, error) {
	query := fmt.Sprintf("name = '%s' and '%s' in parents and trashed = false", name, s.folderID)
	list, err := s.service.Files.List().Q(query).Fields("files(id)").Do()
	if err != nil {
		return "", fmt.Errorf("could not look up %q: %w", name, err)
	}
	if len(list.Files) == 0 {
		return "", nil
	}
	return list.Files[0].Id, nil
}

// Pull downloads a named file from the folder into the local path.
func (s *Store) Pull(name, localPath string) error {
	id, err := s.fileID(name)
	if err != nil {
		return err
	}
	if id == "" {
		return fmt.Errorf("no file %q on drive", name)
	}
	resp, err := s.service.Files.Get(id).Download()
	if err != nil {
		return fmt.Errorf("could not download %q: %w", name, err)
	}
	defer resp.Body.Close()

	f, err := os.Create(localPath)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := io.Copy(f, resp.Body); err != nil {
		return fmt.Errorf("could not write %q: %w", localPath, err)
	}
	return nil
}

// Push uploads a local file into the folder, replacing any previous
// version of the same name.
func (s *Store) Push(localPath, name string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer f.Close()

	id, err := s.fileID(name)
	if err != nil {
		return err
	}
	if id == "" {
		_, err = s.service.Files.Create(&driveapi.File{
			Name:    name,
			Parents: []string{s.folderID},
		}).Media(f).Do()
	} else {
		_, err = s.service.Files.Update(id, &driveapi.File{}).Media(f).Do()
	}
	if err != nil {
		return fmt.Errorf("could not upload %q: %w", name, err)
	}
	return nil
}
