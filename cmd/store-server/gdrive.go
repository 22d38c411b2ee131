// Copyright 2026 The Kawa Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package storeserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"os"
	"strings"

	"github.com/kawafs/kawa/pkg/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
)

// gdriveStore keeps blocks as files in the authorized account's Drive,
// named by their keys. Drive allows several files with the same name, so
// writes delete stale namesakes before uploading.
type gdriveStore struct {
	service *drive.Service
	logger  *log.Logger
}

var _ Store = &gdriveStore{}

// newGoogleDriveStore runs the oauth dance if needed: client credentials
// come from credentials.json, and the bearer token is cached in token.json
// next to it. First use prints an authorization URL and waits for the code
// on stdin.
func newGoogleDriveStore(logger *log.Logger) (*gdriveStore, error) {
	client, err := driveHTTPClient(logger)
	if err != nil {
		return nil, err
	}
	service, err := drive.New(client)
	if err != nil {
		return nil, err
	}
	return &gdriveStore{service: service, logger: logger}, nil
}

func (g *gdriveStore) Read(key string) ([]byte, error) {
	id, err := g.fileID(key)
	if err != nil {
		return nil, err
	}

	res, err := g.service.Files.Get(id).Download()
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	return ioutil.ReadAll(res.Body)
}

func (g *gdriveStore) Write(key string, val []byte) error {
	res, err := g.service.Files.List().Fields("files(name, id)").Q(nameQuery(key)).Do()
	if err != nil {
		return err
	}
	for _, f := range res.Files {
		if err := g.service.Files.Delete(f.Id).Do(); err != nil {
			return err
		}
	}

	r := bytes.NewReader(val)
	if _, err := g.service.Files.Create(&drive.File{Name: key}).Media(r).Do(); err != nil {
		return err
	}
	return nil
}

func (g *gdriveStore) Has(key string) bool {
	_, err := g.fileID(key)
	return err == nil
}

func (g *gdriveStore) Erase(key string) error {
	id, err := g.fileID(key)
	if err != nil {
		return err
	}
	return g.service.Files.Delete(id).Do()
}

func (g *gdriveStore) Keys() ([]string, error) {
	res, err := g.service.Files.List().Fields("files(name)").Do()
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(res.Files))
	for _, f := range res.Files {
		keys = append(keys, f.Name)
	}
	return keys, nil
}

func (g *gdriveStore) fileID(name string) (string, error) {
	res, err := g.service.Files.List().Fields("files(name, id)").Q(nameQuery(name)).Do()
	if err != nil {
		return "", err
	}
	if len(res.Files) == 0 {
		return "", errors.New(fmt.Sprintf("no drive file named %q", name))
	}
	return res.Files[0].Id, nil
}

func nameQuery(name string) string {
	return "name = '" + strings.Replace(name, "'", "\\'", -1) + "'"
}

func driveHTTPClient(logger *log.Logger) (*http.Client, error) {
	b, err := ioutil.ReadFile("credentials.json")
	if err != nil {
		return nil, err
	}

	config, err := google.ConfigFromJSON(b, drive.DriveScope)
	if err != nil {
		return nil, err
	}

	tokFile := "token.json"
	tok, err := tokenFromFile(tokFile)
	if err != nil {
		tok, err = tokenFromWeb(config)
		if err != nil {
			return nil, err
		}
		saveToken(logger, tokFile, tok)
	}

	return config.Client(context.Background(), tok), nil
}

func tokenFromWeb(config *oauth2.Config) (*oauth2.Token, error) {
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Go to the following link in your browser then type the "+
		"authorization code: \n%v\n", authURL)

	var authCode string
	if _, err := fmt.Scan(&authCode); err != nil {
		return nil, err
	}

	return config.Exchange(context.TODO(), authCode)
}

func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

func saveToken(logger *log.Logger, path string, token *oauth2.Token) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		logger.Errorf("unable to cache oauth token: %v", err)
		return
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(token); err != nil {
		logger.Errorf("unable to cache oauth token: %v", err)
	}
}
