package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/namsral/flag"
	"go.uber.org/zap/zapcore"

	"randomwalker/bot"
)

// envPrefix 只读取带此前缀的环境变量，如 RANDOM_WALKER_SEED
const envPrefix = "RANDOM_WALKER"

// random walker 入口：每读到一行 JSON 就向 stdout 回复一个随机方向
func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func newFlagSet(opts *bot.Options) *flag.FlagSet {
	fs := flag.NewFlagSetWithEnvPrefix("random-walker", envPrefix, flag.ContinueOnError)
	fs.Uint64Var(&opts.Seed, "seed", opts.Seed, "random generator seed")
	fs.StringVar(&opts.RNG, "rng", opts.RNG, "random generator: pcg32 or math")
	fs.StringVar((*string)(&opts.OnMalformed), "on_malformed", string(opts.OnMalformed), "malformed input lines: fatal or skip")
	fs.StringVar(&opts.LogFile, "log_file", "", "also write logs to this file (rotated)")
	fs.StringVar(&opts.LogLevel, "log_level", opts.LogLevel, "log file level: debug, info, warn or error")
	fs.StringVar(&opts.WSURL, "ws", "", "play over a websocket at this URL instead of stdin/stdout")
	return fs
}

// run 返回进程退出码：参数错误 2，运行期错误 1，正常结束或被取消 0
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts := bot.DefaultOptions()
	fs := newFlagSet(&opts)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if err := opts.Validate(); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	// 诊断信息只走 stderr，stdout 只留给走法
	log, err := bot.NewLogger(zapcore.Lock(zapcore.AddSync(stderr)), opts)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	defer func() { _ = log.Sync() }()

	rng, err := bot.NewRand(opts.RNG, opts.Seed)
	if err != nil {
		log.Errorf("init rng: %v", err)
		return 2
	}
	sess := bot.NewSession(rng, log, opts.OnMalformed)

	if opts.WSURL != "" {
		wsCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		err = sess.RunWS(wsCtx, opts.WSURL)
	} else {
		// stdin 模式不拦截信号：关闭输入或终止进程即结束
		err = sess.Run(ctx, stdin, stdout)
	}
	log.Debugw("session finished", sess.Metrics().Fields()...)

	if err != nil {
		if errors.Is(err, context.Canceled) {
			return 0
		}
		log.Errorf("random walker: %v", err)
		return 1
	}
	return 0
}
