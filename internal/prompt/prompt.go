package prompt

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Template asks the model for a JSON object with a single "summary" field.
// {title} and {diff} are replaced by Build.
const Template = `
通俗易懂的角色描述：基于需求描述和实现该需求的git diff变更代码，自动生成规范的git提交信息。 
需求描述的标题如下：{title}

git diff变更代码如下：
(DIFF-START)
{diff}
(DIFF-END)

任务拆解
1.  解析需求标题： 
提取关键信息，如功能点、问题点等。
对文本进行清洗，去除无关字符和格式。
2.  分析git diff变更代码：
识别变更的文件和代码块。
分析代码变更的类型（如新增、修改、删除等）。
3.  生成Commit Message：
结合需求标题以及代码变更分析，编写Commit Message。 
确保提取的内容符合对应项的要求，如“summary: 少于30字的中文，简洁的、准确的描述Git Commit Message”等。
4.  验证Commit Message： 
检查Commit Message是否清晰、准确。
5.  按以下格式输出CommitMessage，『请仅输出内容，不要做任何解释』：
{
  "summary": string  // 少于30字的中文，简洁的、准确的描述Git Commit Message
}
`

// Build substitutes title and diff into Template. Both placeholders are
// replaced in a single pass so text inside the diff is never re-expanded.
func Build(title, diff string) string {
	r := strings.NewReplacer("{title}", title, "{diff}", diff)
	return r.Replace(Template)
}

type summary struct {
	Summary *string `json:"summary"`
}

var reCodeBlock = regexp.MustCompile("(?s)```(?:\\w+)?\\s*(.+?)\\s*```")

// ErrNoSummary is returned when the reply decodes but carries no usable summary.
var ErrNoSummary = errors.New("response has no summary field")

// ParseSummary decodes the model reply and returns its "summary" field.
// Replies wrapped in a markdown code block are unwrapped first.
func ParseSummary(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if m := reCodeBlock.FindStringSubmatch(s); len(m) == 2 {
		s = m[1]
	}

	var out summary
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return "", fmt.Errorf("decode summary: %w", err)
	}
	if out.Summary == nil || strings.TrimSpace(*out.Summary) == "" {
		return "", ErrNoSummary
	}
	return strings.TrimSpace(*out.Summary), nil
}
