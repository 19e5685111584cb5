package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/omarkhaled-auto/Super-Duper-Agent-sub000/internal/config"
	"github.com/omarkhaled-auto/Super-Duper-Agent-sub000/internal/graph"
	"github.com/omarkhaled-auto/Super-Duper-Agent-sub000/internal/reporter"
	"github.com/omarkhaled-auto/Super-Duper-Agent-sub000/internal/scheduler"
	"github.com/omarkhaled-auto/Super-Duper-Agent-sub000/internal/scope"
	"github.com/omarkhaled-auto/Super-Duper-Agent-sub000/internal/state"
	"github.com/omarkhaled-auto/Super-Duper-Agent-sub000/internal/task"
	"github.com/omarkhaled-auto/Super-Duper-Agent-sub000/internal/tasksfile"
	"github.com/omarkhaled-auto/Super-Duper-Agent-sub000/internal/ui"
)

var (
	flagConfig       string
	flagTasksFile    string
	flagMaxParallel  int
	flagStrategy     string
	flagMilestone    string
	flagCompleted    []string
	flagJSON         bool
	flagFormat       string
	flagCodebaseRoot string
	flagMaxChars     int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "taskweave",
		Short: "Schedule task graphs into parallel execution waves",
		Long: `Taskweave reads a task document (TASKS.md or a JSON export), builds the
dependency graph, resolves same-wave file conflicts, and prints execution
waves plus the critical path for downstream agent orchestration.`,
	}

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default taskweave.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagTasksFile, "tasks", "", "Task document path (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Machine-readable JSON output")

	rootCmd.AddCommand(planCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(statusCmd())
	rootCmd.AddCommand(vizCmd())
	rootCmd.AddCommand(watchCmd())
	rootCmd.AddCommand(contextCmd())
	rootCmd.AddCommand(completeCmd())
	rootCmd.AddCommand(cleanCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", ui.Red("error:"), err)
		os.Exit(1)
	}
}

// loadTasks reads and parses the configured task document.
func loadTasks(cfg *config.Config) ([]*task.Task, string, error) {
	path := cfg.TasksFile
	if flagTasksFile != "" {
		path = flagTasksFile
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read tasks: %w", err)
	}
	tasks, err := tasksfile.Parse(string(content))
	if err != nil {
		return nil, path, fmt.Errorf("parse %s: %w", path, err)
	}
	return tasks, path, nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagMaxParallel >= 0 {
		cfg.MaxParallelTasks = flagMaxParallel
	}
	if flagStrategy != "" {
		cfg.ConflictStrategy = flagStrategy
	}
	return cfg, nil
}

// buildSchedule is shared by plan, viz, and watch.
func buildSchedule() (*scheduler.Result, string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, "", err
	}
	tasks, path, err := loadTasks(cfg)
	if err != nil {
		return nil, "", err
	}

	var result *scheduler.Result
	if flagMilestone != "" {
		completed := make(map[string]bool, len(flagCompleted))
		for _, m := range flagCompleted {
			completed[m] = true
		}
		result, err = scheduler.ComputeMilestone(tasks, flagMilestone, completed, cfg.SchedulerConfig())
	} else {
		result, err = scheduler.Compute(tasks, cfg.SchedulerConfig())
	}
	if err != nil {
		return nil, "", err
	}
	return result, path, nil
}

func planCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute execution waves, conflicts, and the critical path",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, path, err := buildSchedule()
			if err != nil {
				return err
			}

			if _, err := state.Save(result, path); err != nil {
				return err
			}

			r := reporter.New(result)
			if flagJSON {
				data, err := r.JSON()
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			ui.PrintLogo()
			r.PrintPlan(os.Stdout)
			r.PrintProgress(os.Stdout)
			return nil
		},
	}

	cmd.Flags().IntVar(&flagMaxParallel, "max-parallel", -1, "Cap wave width (0 = unbounded)")
	cmd.Flags().StringVar(&flagStrategy, "strategy", "", "Conflict strategy (artificial-dependency, integration-agent)")
	cmd.Flags().StringVar(&flagMilestone, "milestone", "", "Schedule only this milestone")
	cmd.Flags().StringSliceVar(&flagCompleted, "completed-milestones", nil, "Milestones treated as fully complete")

	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the task graph for dangling references, cycles, and orphans",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			tasks, path, err := loadTasks(cfg)
			if err != nil {
				return err
			}

			issues := graph.Build(tasks).Validate()
			if len(issues) == 0 {
				fmt.Printf("%s %s: %d tasks, graph is valid\n", ui.Green("✓"), path, len(tasks))
				return nil
			}

			hard := 0
			for _, issue := range issues {
				if issue.Severity == graph.SeverityError {
					hard++
					fmt.Printf("%s %s\n", ui.Red("✗"), issue.Message)
				} else {
					fmt.Printf("%s %s\n", ui.Yellow("!"), issue)
				}
			}
			if hard > 0 {
				return fmt.Errorf("%d hard validation error(s)", hard)
			}
			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the last computed schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !state.Exists() {
				return fmt.Errorf("no schedule found; run 'taskweave plan' first")
			}
			saved, err := state.Load()
			if err != nil {
				return err
			}

			r := reporter.New(saved.Schedule)
			if flagJSON {
				data, err := r.JSON()
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			fmt.Printf("Run %s over %s (computed %s)\n\n",
				ui.BoldMagenta(saved.RunID), ui.Bold(saved.TasksFile),
				ui.Dim(saved.ComputedAt.Format(time.RFC3339)))
			r.PrintPlan(os.Stdout)
			r.PrintProgress(os.Stdout)
			return nil
		},
	}
}

func vizCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "viz",
		Short: "Print the dependency DAG (ascii or dot)",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, _, err := buildSchedule()
			if err != nil {
				return err
			}

			r := reporter.New(result)
			if flagFormat == "dot" {
				r.DOT(os.Stdout)
				return nil
			}
			printASCIIDAG(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&flagFormat, "format", "ascii", "Output format (ascii, dot)")
	cmd.Flags().StringVar(&flagMilestone, "milestone", "", "Schedule only this milestone")
	cmd.Flags().StringSliceVar(&flagCompleted, "completed-milestones", nil, "Milestones treated as fully complete")

	return cmd
}

func printASCIIDAG(result *scheduler.Result) {
	critical := make(map[string]bool, len(result.CriticalPath.Path))
	for _, id := range result.CriticalPath.Path {
		critical[id] = true
	}
	g := graph.Build(result.Tasks)

	fmt.Printf("🔗 %s\n", ui.BoldCyan("Task Dependency Graph"))
	fmt.Println(ui.Cyan("═══════════════════════"))
	fmt.Println()

	for _, wave := range result.Waves {
		fmt.Printf("%s 🌊 Wave %d %s\n", ui.Cyan("──"), wave.Index+1, ui.Cyan("──────────────────────────────"))
		for _, id := range wave.TaskIDs {
			crit := " "
			if critical[id] {
				crit = ui.BoldYellow("⚡")
			}
			t := result.TaskByID(id)
			fmt.Printf("  %s %s %s\n", crit, ui.TaskLabel(t), t.Title)

			for _, succ := range g.Adj[id] {
				fmt.Printf("      %s %s\n", ui.Dim("└──→"), ui.Magenta(succ))
			}
		}
		fmt.Println()
	}
}

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Recompute the schedule whenever the task document changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			recompute := func() {
				result, path, err := buildSchedule()
				if err != nil {
					fmt.Fprintf(os.Stderr, "%s %v\n", ui.Red("error:"), err)
					return
				}
				if _, err := state.Save(result, path); err != nil {
					fmt.Fprintf(os.Stderr, "%s %v\n", ui.Red("error:"), err)
					return
				}
				fmt.Printf("%s recomputed: %d tasks, %d waves\n",
					ui.Green("✓"), len(result.Tasks), result.WaveCount)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			path := cfg.TasksFile
			if flagTasksFile != "" {
				path = flagTasksFile
			}

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}
			defer watcher.Close()

			// Watch the directory: editors commonly replace the file on save,
			// which drops a watch registered on the file itself.
			if err := watcher.Add(filepath.Dir(path)); err != nil {
				return fmt.Errorf("watch %s: %w", path, err)
			}

			fmt.Printf("Watching %s (ctrl-c to stop)\n", ui.Bold(path))
			recompute()

			var timer *time.Timer
			for {
				select {
				case event, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if filepath.Clean(event.Name) != filepath.Clean(path) {
						continue
					}
					if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
						continue
					}
					// Debounce bursts of write events
					if timer != nil {
						timer.Stop()
					}
					timer = time.AfterFunc(200*time.Millisecond, recompute)
				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					fmt.Fprintf(os.Stderr, "%s %v\n", ui.Red("watch error:"), err)
				}
			}
		},
	}
}

func contextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "context <task-id>",
		Short: "Render the per-task context package as markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			tasks, _, err := loadTasks(cfg)
			if err != nil {
				return err
			}

			var target *task.Task
			for _, t := range tasks {
				if t.ID == args[0] {
					target = t
					break
				}
			}
			if target == nil {
				return fmt.Errorf("task %s not found", args[0])
			}

			var cbmap scope.CodebaseMap
			root := cfg.CodebaseRoot
			if flagCodebaseRoot != "" {
				root = flagCodebaseRoot
			}
			if root != "" {
				m, err := scope.ScanDir(root, cfg.IgnoreGlobs)
				if err != nil {
					return err
				}
				cbmap = m
			}

			md, err := scope.RenderMarkdown(scope.BuildTaskContext(target, cbmap, nil, nil))
			if err != nil {
				return err
			}
			fmt.Print(md)

			if flagMaxChars > 0 {
				result, _, err := buildSchedule()
				if err != nil {
					return err
				}
				fmt.Println()
				fmt.Print(scope.FormatScheduleForPrompt(result, flagMaxChars))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flagCodebaseRoot, "codebase-root", "", "Directory to scan for create/modify classification")
	cmd.Flags().IntVar(&flagMaxChars, "with-schedule", 0, "Append the schedule summary, capped to N characters")

	return cmd
}

func completeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete [task-id...]",
		Short: "Flip PENDING statuses to COMPLETE in the task document",
		Long: `Rewrites "- Status: PENDING" lines to COMPLETE for the named task blocks
(or every block when no IDs are given), leaving the rest of the document
byte-for-byte untouched. Only header-block documents are rewritten.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			path := cfg.TasksFile
			if flagTasksFile != "" {
				path = flagTasksFile
			}
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read tasks: %w", err)
			}

			var ids []string
			if len(args) > 0 {
				ids = args
			}
			updated := tasksfile.UpdateStatuses(string(content), ids)
			if updated == string(content) {
				fmt.Println(ui.Dim("nothing to update"))
				return nil
			}

			if err := os.WriteFile(path, []byte(updated), 0644); err != nil {
				return fmt.Errorf("write tasks: %w", err)
			}
			label := "all tasks"
			if len(ids) > 0 {
				label = strings.Join(ids, ", ")
			}
			fmt.Printf("%s marked %s complete in %s\n", ui.Green("✓"), label, path)
			return nil
		},
	}
}

func cleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove the persisted schedule state",
		RunE: func(cmd *cobra.Command, args []string) error {
			return state.Clean()
		},
	}
}
