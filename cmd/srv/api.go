package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/memegentino/backend/internal/middleware"
	"github.com/memegentino/backend/pkg/router"
	"github.com/rs/cors"

	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(ct *cli.Context) error {
	server.loadConfig()
	server.loadLogger()
	server.loadEndpoint()
	server.loadDatabase()
	server.loadRepos()
	server.loadDomains()
	server.loadRouter()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Notion-Version"},
		AllowCredentials: true,
	})

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", s.configs.ApiServer.Port),
		Handler: c.Handler(s.router.Handler()),
	}

	log.Printf("Starting server on port: %s\n", s.configs.ApiServer.Port)
	var err error
	if cfg := s.configs.ApiServer; cfg.Cert != "" && cfg.Key != "" {
		err = s.server.ListenAndServeTLS(cfg.Cert, cfg.Key)
	} else {
		err = s.server.ListenAndServe()
	}
	if err != nil {
		panic(err)
	}

	log.Printf("server stop")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, *s.configs, s.logger)
	s.router.AddCloser(middleware.Logger())

	// Auth API
	authRouter := s.router.Branch()
	authRouter.After(middleware.HandleSetAccessToken())
	authRouter.After(middleware.HandleSaveSession())
	authRouter.After(middleware.HandleRedirect())
	{
		router.GET(authRouter, "/oauth2/login", s.authDomain.OAuth2Login)
		router.GET(authRouter, "/oauth2/callback", s.authDomain.OAuth2Callback)
	}

	// These following APIs need authentication with an access token.
	authedRouter := s.router.Branch()
	authedRouter.Before(middleware.Authenticate())
	{
		// User API
		router.GET(authedRouter, "/getMe", s.userDomain.GetMe)

		// Workspace API
		router.GET(authedRouter, "/getWorkspaces", s.workspaceDomain.GetWorkspaces)

		// Meme API
		router.POST(authedRouter, "/createMeme", s.memeDomain.Create)
		router.POST(authedRouter, "/updateMeme", s.memeDomain.Update)
		router.POST(authedRouter, "/deleteMeme", s.memeDomain.Delete)
		router.GET(authedRouter, "/getMemes", s.memeDomain.GetList)

		// Template API
		router.GET(authedRouter, "/getTemplateImages", s.templateDomain.GetTemplateImages)
	}

	// Public API. The meme endpoints gate visibility themselves.
	router.GET(s.router, "/getMeme", s.memeDomain.Get)
	s.router.Raw("/meme", s.memeDomain.ServeData)

	// The proxy owns its wire format completely, since provider responses
	// are mirrored verbatim.
	s.router.Raw("/notion/", s.proxyDomain.Proxy)
}
