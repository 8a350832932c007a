package search

import (
	"caseflow/client/es"
	"caseflow/domain"
	"caseflow/indices"
	"caseflow/session"
	"encoding/json"
)

var (
	SearchProcessesFunc = SearchProcesses
)

type ProcessSearchQuery struct {
	Keyword string `json:"q" form:"q" binding:"required"`
}

func SearchProcesses(q ProcessSearchQuery, s *session.Session) ([]domain.Process, error) {
	query := es.H{
		"query": es.H{
			"multi_match": es.H{
				"query":  q.Keyword,
				"fields": []string{"title", "type", "externalRef"},
			},
		},
	}

	result, err := es.SearchFunc(indices.ProcessIndexName, query, s)
	if err != nil {
		return nil, err
	}

	processes := make([]domain.Process, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		doc := indices.ProcessDocument{}
		if err := json.Unmarshal([]byte(hit.Source), &doc); err != nil {
			return nil, err
		}
		processes = append(processes, doc.Process)
	}
	return processes, nil
}
