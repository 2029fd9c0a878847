package bot

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MalformedPolicy 非法输入行的处理方式
type MalformedPolicy string

const (
	// FailOnMalformed 返回错误，进程以非零状态退出
	FailOnMalformed MalformedPolicy = "fatal"
	// SkipMalformed 记录告警并跳过该行，不输出走法
	SkipMalformed MalformedPolicy = "skip"
)

// Options 启动参数（命令行或同名大写环境变量）
type Options struct {
	Seed        uint64
	RNG         string          `validate:"oneof=pcg32 math"`
	OnMalformed MalformedPolicy `validate:"oneof=fatal skip"`
	LogFile     string
	LogLevel    string `validate:"oneof=debug info warn error"`
	WSURL       string `validate:"omitempty,url"`
}

func DefaultOptions() Options {
	return Options{
		Seed:        1,
		RNG:         RNGPCG32,
		OnMalformed: FailOnMalformed,
		LogLevel:    "info",
	}
}

var validate = validator.New()

// Validate 校验取值范围，错误信息按字段拼接；级别名不区分大小写，校验前统一转小写
func (o *Options) Validate() error {
	o.LogLevel = strings.ToLower(o.LogLevel)
	err := validate.Struct(o)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	var details strings.Builder
	for _, fe := range verrs {
		if details.Len() > 0 {
			details.WriteString("; ")
		}
		switch fe.Tag() {
		case "oneof":
			fmt.Fprintf(&details, "%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value())
		case "url":
			fmt.Fprintf(&details, "%s must be a URL, got %q", fe.Field(), fe.Value())
		default:
			fmt.Fprintf(&details, "%s failed %s", fe.Field(), fe.Tag())
		}
	}
	return fmt.Errorf("invalid options: %s", details.String())
}
