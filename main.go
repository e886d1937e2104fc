package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ByLCY/spantext/compose"
	"github.com/ByLCY/spantext/config"
	"github.com/ByLCY/spantext/dsl"
	"github.com/ByLCY/spantext/renderer"
	canvasrenderer "github.com/ByLCY/spantext/renderer/canvas"
	"github.com/ByLCY/spantext/textview"
)

func main() {
	input := flag.String("in", "examples/demo.spt", "DSL 文件路径")
	output := flag.String("out", "output/demo.pdf", "PDF 输出路径")
	debug := flag.String("debug", "", "组版调试 JSON 输出路径")
	dataJSON := flag.String("data", "", "绑定到 DSL 的 JSON 数据")
	configPath := flag.String("config", config.DefaultFile, "可选的 YAML 配置文件")
	var touches touchPoints
	flag.Var(&touches, "touch", "触摸探测点 x,y（页面坐标，mm），可重复")
	verbose := flag.Bool("v", false, "输出 info 级日志")
	veryVerbose := flag.Bool("vv", false, "输出 debug 级日志")
	quiet := flag.Bool("q", false, "仅输出错误日志")
	flag.Parse()

	cfg, err := config.LoadOptional(*configPath)
	if err != nil {
		fatal(slog.Default(), "加载配置失败", err)
	}
	level, err := cfg.Level(slog.LevelWarn)
	if err != nil {
		fatal(slog.Default(), "加载配置失败", err)
	}
	if *veryVerbose || *verbose || *quiet {
		level = levelFromFlags(*veryVerbose, *verbose, *quiet)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var inputData any
	if *dataJSON != "" {
		if err := json.Unmarshal([]byte(*dataJSON), &inputData); err != nil {
			fatal(logger, "解析 data JSON 失败", err)
		}
	}

	r := canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{
		BaseDir: filepath.Dir(*input),
		Logger:  logger,
	})
	opts, err := cfg.BuildOptions(r)
	if err != nil {
		fatal(logger, "加载配置失败", err)
	}
	result, err := run(*input, *output, *debug, inputData, opts, r)
	if err != nil {
		fatal(logger, "生成 PDF 失败", err)
	}
	logger.Info("已生成 PDF", "path", *output, "views", len(result.Views))
	reportTouches(os.Stdout, result, touches)
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "err", err)
	os.Exit(1)
}

// levelFromFlags 将 -vv / -v / -q 映射为日志级别，默认 warn。
func levelFromFlags(vv, v, q bool) slog.Level {
	switch {
	case vv:
		return slog.LevelDebug
	case v:
		return slog.LevelInfo
	case q:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// run 串联解析、组版与渲染。
func run(inputPath, outputPath, debugPath string, data any, opts compose.BuildOptions, r renderer.Renderer) (*compose.Result, error) {
	if r == nil {
		return nil, fmt.Errorf("renderer 不能为空")
	}
	if opts.Typesetter == nil {
		return nil, fmt.Errorf("缺少排版后端")
	}
	file, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("无法打开 DSL 文件 %s: %w", inputPath, err)
	}
	defer file.Close()

	doc, err := dsl.ParseFile(inputPath, file)
	if err != nil {
		return nil, fmt.Errorf("解析 DSL 失败: %w", err)
	}

	result, err := compose.Build(doc, data, opts)
	if err != nil {
		return nil, fmt.Errorf("组版失败: %w", err)
	}

	if debugPath != "" {
		if err := writeDebug(result, debugPath); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return nil, fmt.Errorf("创建输出目录失败: %w", err)
	}

	pdfBytes, err := r.Render(result)
	if err != nil {
		return nil, fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	if err := os.WriteFile(outputPath, pdfBytes, 0o644); err != nil {
		return nil, fmt.Errorf("写入 PDF 文件失败: %w", err)
	}
	return result, nil
}

func writeDebug(result *compose.Result, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := compose.WriteDebugJSON(result, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}

// reportTouches 输出每个触摸点命中的视图与归属。
func reportTouches(w io.Writer, result *compose.Result, points touchPoints) {
	for _, pt := range points {
		v, x, y, ok := result.ViewAt(pt.x, pt.y)
		if !ok {
			fmt.Fprintf(w, "touch %g,%g: 未命中视图\n", pt.x, pt.y)
			continue
		}
		owner := textview.FromView(*v).TagForTouch(x, y)
		fmt.Fprintf(w, "touch %g,%g: view=%d owner=%d\n", pt.x, pt.y, v.ID, owner)
	}
}

type touchPoint struct{ x, y float64 }

// touchPoints 实现 flag.Value，支持重复的 -touch x,y。
type touchPoints []touchPoint

func (t *touchPoints) String() string {
	parts := make([]string, 0, len(*t))
	for _, p := range *t {
		parts = append(parts, fmt.Sprintf("%g,%g", p.x, p.y))
	}
	return strings.Join(parts, " ")
}

func (t *touchPoints) Set(v string) error {
	xs, ys, ok := strings.Cut(v, ",")
	if !ok {
		return fmt.Errorf("触摸点格式应为 x,y：%q", v)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return fmt.Errorf("无法解析触摸点 x %q: %w", xs, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return fmt.Errorf("无法解析触摸点 y %q: %w", ys, err)
	}
	*t = append(*t, touchPoint{x: x, y: y})
	return nil
}
