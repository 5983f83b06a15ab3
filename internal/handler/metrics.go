package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	promptsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wyr_prompts_created_total",
		Help: "Total number of prompts created via the API.",
	})

	votesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wyr_votes_total",
			Help: "Total number of accepted votes by option.",
		},
		[]string{"option"},
	)
)
