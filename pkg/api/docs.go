// Package api serves the sync state of the running indexers and their block queries over HTTP.
// @title BlockIndexor API
// @version 1.0
// @description REST API for querying canonical blocks indexed by BlockIndexor
// @contact.name API Support
// @contact.url https://github.com/goran-ethernal/BlockIndexor
// @license.name Apache 2.0
// @license.url https://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @basePath /api/v1
// @schemes http https
package api
