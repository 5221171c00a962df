package main

import (
	"log"
	"net/http"

	"github.com/justmike1/tanuki/commands"
	"github.com/justmike1/tanuki/config"
	"github.com/justmike1/tanuki/gitlab"
	tanukislack "github.com/justmike1/tanuki/slack"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	projects, err := config.LoadProjects(cfg.ProjectsFile)
	if err != nil {
		log.Fatalf("failed to load project registry: %v", err)
	}
	log.Printf("loaded %d projects from %s", len(projects), cfg.ProjectsFile)

	identity, err := config.NewBotIdentity(config.NewEnvStore(cfg.EnvFile))
	if err != nil {
		log.Fatalf("failed to load bot identity: %v", err)
	}

	slackClient := tanukislack.NewClient(cfg.SlackBotToken)
	gitlabClient := gitlab.NewClient(cfg.GitLabURL, cfg.GitLabToken)

	router := commands.NewRouter(slackClient, gitlabClient, projects, identity)
	listener := tanukislack.NewSocketListener(cfg.SlackAppToken, cfg.SlackBotToken, router.Handle)

	// Until the bootstrap handshake records the bot's user id, mentions can't
	// be matched; nudge the operator once per start.
	if identity.UserID() == "" && cfg.SlackDefaultChannel != "" {
		if err := slackClient.PostMessage(cfg.SlackDefaultChannel,
			"Looks like I'm not completely set up, send me a direct message with `@Tanuki`"); err != nil {
			log.Printf("failed to post setup nudge: %v", err)
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	go func() {
		log.Printf("health endpoint listening on :%s", cfg.HealthPort)
		if err := http.ListenAndServe(":"+cfg.HealthPort, ipWhitelist(cfg.HealthAllowedCIDRs, mux)); err != nil {
			log.Printf("health endpoint failed: %v", err)
		}
	}()

	listener.Start()
}
