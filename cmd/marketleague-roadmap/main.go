// Command marketleague-roadmap draws the MarketLeague v1.0 project roadmap to
// marketleague-roadmap.png in the working directory.
package main

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/buffos/go-roadmap/roadmap"
)

const outputFile = "marketleague-roadmap.png"

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "marketleague"})

	r := buildRoadmap(roadmap.WithLogger(logger))
	if err := r.Draw(); err != nil {
		logger.Fatal("Could not draw roadmap", "err", err)
	}
	if err := r.Save(outputFile); err != nil {
		logger.Fatal("Could not save roadmap", "err", err)
	}
	logger.Info("Output saved", "path", outputFile)
}

func buildRoadmap(opts ...roadmap.Option) *roadmap.Roadmap {
	opts = append([]roadmap.Option{roadmap.WithTheme("BLUEMOUNTAIN")}, opts...)
	r := roadmap.New(2000, 1000, opts...)
	r.SetTitle("MarketLeague Roadmap v1.0")
	r.SetTimeline(roadmap.Weekly, "2024-08-26", 15)

	group := r.AddGroup("Documentation", "#FFC000", "black")

	group.AddTask("Problem Research", "2024-08-26", "2024-09-05")

	task := group.AddTask("Planning Ideas w/ Professor", "2024-08-29", "2024-09-08")
	task.AddMilestone("Idea Finalized", "2024-09-08")

	group.AddTask("Use Case, Sequence, Architecture Diagrams", "2024-09-09", "2024-09-22")
	task = group.AddTask("Dataflow, Class, Database Diagrams", "2024-09-19", "2024-09-30")
	task.AddMilestone("Initial Diagrams Created", "2024-09-30")

	group.AddTask("Roadmap Creation", "2024-10-01", "2024-10-13")
	group.AddTask("Iterate on Diagrams", "2024-10-10", "2024-12-04")

	group = r.AddGroup("Technical Development", "#70AD47", "black")

	task = group.AddTask("Technology and Platform Research", "2024-08-26", "2024-09-15")
	task.AddMilestone("Technologies Selected", "2024-09-15")

	task = group.AddTask("Integration Testing (Angular, Gin, Postgres)", "2024-09-16", "2024-10-06")
	task.AddMilestone("Basic Button Integration Success", "2024-10-06")

	group.AddTask("Stock API Testing", "2024-10-07", "2024-10-20")
	group.AddTask("Login/Signup", "2024-10-07", "2024-10-20")
	group.AddTask("User Class", "2024-10-07", "2024-10-21")

	// Planned work.
	group.AddTask("Stock Objects", "2024-10-10", "2024-10-26")
	group.AddTask("Portfolio Functionality", "2024-10-10", "2024-10-27")
	group.AddTask("League Creation", "2024-10-11", "2024-10-28")
	group.AddTask("Trade Functionality", "2024-10-11", "2024-10-28")
	group.AddTask("Trade History", "2024-10-11", "2024-10-28")

	group.AddTask("Scoring System Implementation", "2024-10-28", "2024-11-14")
	group.AddTask("Leaderboard", "2024-10-30", "2024-11-17")
	group.AddTask("Trade Fairness Algorithm", "2024-10-31", "2024-11-18")
	group.AddTask("Stock Charts Data Visualization", "2024-11-16", "2024-12-02")

	group = r.AddGroup("Presentations", "#ED7D31", "black")

	task = group.AddTask("Idea Presentation Work", "2024-08-26", "2024-09-11")
	task.AddMilestone("Idea Proposal", "2024-09-11")

	task = group.AddTask("Diagrams Presentation Preparation", "2024-09-14", "2024-10-02")
	task.AddMilestone("Diagrams & Documents Presentation", "2024-10-02")

	task = group.AddTask("Prototype Slides and Demo Work", "2024-10-05", "2024-10-30")
	task.AddMilestone("Prototype Demo", "2024-10-30")

	task = group.AddTask("Alpha Demonstration Preparation", "2024-11-02", "2024-12-04")
	task.AddMilestone("Alpha Demo", "2024-12-04")

	return r
}
