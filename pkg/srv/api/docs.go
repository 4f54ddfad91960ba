/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package api

import (
	_ "embed"
	"encoding/json"
	"net/http"

	"github.com/go-openapi/loads"
	"github.com/go-openapi/runtime/middleware"

	"jinr.ru/greenlab/go-awg/pkg/log"
)

const (
	SwaggerPath = "/swagger.json"
	DocsPath    = "docs"
)

//go:embed swagger.json
var swaggerJSON []byte

// LoadDocument parses and analyzes the embedded API document
func LoadDocument() (*loads.Document, error) {
	return loads.Analyzed(json.RawMessage(swaggerJSON), "")
}

func (s *ApiServer) configureDocs() error {
	doc, err := LoadDocument()
	if err != nil {
		return err
	}
	log.Debug("Serving API document: %s %s", doc.Spec().Info.Title, doc.Spec().Info.Version)
	raw := doc.Raw()
	s.Router.HandleFunc(SwaggerPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", ContentTypeJSON)
		w.Write(raw)
	}).Methods("GET")
	redoc := middleware.Redoc(middleware.RedocOpts{
		BasePath: "/",
		Path:     DocsPath,
		SpecURL:  SwaggerPath,
		Title:    doc.Spec().Info.Title,
	}, http.NotFoundHandler())
	s.Router.Handle("/"+DocsPath, redoc).Methods("GET")
	return nil
}
