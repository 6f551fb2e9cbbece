package main

import (
	"net/http"
)

func handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	executeTemplate(w, "index.html", IndexPageData{Title: "Clinical Note Smart Summarizer"})
}

func handleAbout(w http.ResponseWriter, r *http.Request) {
	executeTemplate(w, "about.html", AboutPageData{Title: "About - Clinical Note Smart Summarizer"})
}
