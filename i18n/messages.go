package i18n

var english = Table{
	"conflict.placeholder":                       "this placeholder still needs a value",
	"conflict.unparsable":                        "could not understand {text}",
	"conflict.duplicate_docs":                    "there is already documentation in {language}",
	"conflict.duplicate_docs.secondary":          "this is the earlier documentation in {language}",
	"conflict.misplaced_conversion":              "conversions can only be defined in a block",
	"conflict.not_a_key_value":                   "this map entry is not a key and value",
	"conflict.not_a_key_value.secondary":         "this map expects key and value entries",
	"conflict.unknown_input":                     "no input is named {name}",
	"conflict.misplaced_input":                   "input {name} is given out of order",
	"conflict.misplaced_input.secondary":         "this is where {name} is declared",
	"conflict.missing_input":                     "input {name} is required",
	"conflict.missing_input.secondary":           "{name} is declared here without a default",
	"conflict.incompatible_input":                "{name} expects {expected} but was given {given}",
	"conflict.incompatible_input.secondary":      "{name} is declared as {expected}",
	"conflict.not_a_function":                    "a {type} cannot be evaluated",
	"conflict.unknown_name":                      "nothing is named {name}",
	"conflict.duplicate_name":                    "{name} is already defined",
	"conflict.duplicate_name.secondary":          "{name} was first defined here",
	"conflict.reference_cycle":                   "{name} depends on itself",
	"conflict.reference_cycle.secondary":         "{name} is defined here",
	"conflict.incompatible_bind":                 "{name} expects {expected} but was given {given}",
	"conflict.incompatible_bind.secondary":       "{name} is declared as {expected}",
	"conflict.incompatible_operand":              "{operator} cannot combine {left} and {right}",
	"conflict.incompatible_operand.secondary":    "this operand is {left}",
	"conflict.expected_boolean":                  "conditions must be true or false, not {given}",
	"conflict.unknown_property":                  "{type} has no property {name}",
	"conflict.misplaced_this":                    "this only has meaning inside a conversion",
	"conflict.unknown_conversion":                "there is no way to convert {from} to {to}",
	"conflict.expected_end_expression":           "a block must end with an expression",
	"conflict.expected_end_expression.secondary": "this block has no final value",
	"conflict.not_a_stream":                      "a {type} is not a stream",
	"conflict.internal":                          "could not check this: {detail}",

	"exception.name":          "nothing is named {name}",
	"exception.type":          "expected {expected} but received {given}",
	"exception.unimplemented": "this is not implemented yet",
	"exception.context.empty": "there was no evaluation to run this in",
	"exception.context.full":  "too many evaluations are in progress",
	"exception.conversion":    "there is no way to convert {from} to {to}",
	"exception.value":         "expected a value: {detail}",
	"exception.semantic":      "reached something that could not be understood",

	"step.start":  "starting {node}",
	"step.finish": "finishing {node}",
	"step.halt":   "stopping: {reason}",
	"step.jump":   "skipping {count} steps",
	"step.jumpif": "skipping {count} steps if the value is {when}",

	"log.conflicts": "{count} conflicts",
	"log.value":     "value",
}

var japanese = Table{
	"conflict.placeholder":                       "このプレースホルダーにはまだ値が必要です",
	"conflict.unparsable":                        "{text} を解釈できません",
	"conflict.duplicate_docs":                    "{language} のドキュメントはすでにあります",
	"conflict.duplicate_docs.secondary":          "{language} の最初のドキュメントです",
	"conflict.misplaced_conversion":              "変換はブロックの中でのみ定義できます",
	"conflict.not_a_key_value":                   "このマップの要素はキーと値ではありません",
	"conflict.not_a_key_value.secondary":         "このマップはキーと値の要素を必要とします",
	"conflict.unknown_input":                     "{name} という入力はありません",
	"conflict.misplaced_input":                   "入力 {name} の位置が不正です",
	"conflict.misplaced_input.secondary":         "{name} はここで宣言されています",
	"conflict.missing_input":                     "入力 {name} は必須です",
	"conflict.missing_input.secondary":           "{name} は既定値なしで宣言されています",
	"conflict.incompatible_input":                "{name} には {expected} が必要ですが {given} が渡されました",
	"conflict.incompatible_input.secondary":      "{name} は {expected} として宣言されています",
	"conflict.not_a_function":                    "{type} は評価できません",
	"conflict.unknown_name":                      "{name} という名前はありません",
	"conflict.duplicate_name":                    "{name} はすでに定義されています",
	"conflict.duplicate_name.secondary":          "{name} は最初にここで定義されました",
	"conflict.reference_cycle":                   "{name} が自分自身に依存しています",
	"conflict.reference_cycle.secondary":         "{name} はここで定義されています",
	"conflict.incompatible_bind":                 "{name} には {expected} が必要ですが {given} が渡されました",
	"conflict.incompatible_bind.secondary":       "{name} は {expected} として宣言されています",
	"conflict.incompatible_operand":              "{operator} は {left} と {right} を組み合わせられません",
	"conflict.incompatible_operand.secondary":    "この被演算子は {left} です",
	"conflict.expected_boolean":                  "条件は真偽値である必要があります（{given} ではなく）",
	"conflict.unknown_property":                  "{type} にプロパティ {name} はありません",
	"conflict.misplaced_this":                    "this は変換の中でのみ意味を持ちます",
	"conflict.unknown_conversion":                "{from} から {to} への変換はありません",
	"conflict.expected_end_expression":           "ブロックは式で終わる必要があります",
	"conflict.expected_end_expression.secondary": "このブロックには最終値がありません",
	"conflict.not_a_stream":                      "{type} はストリームではありません",
	"conflict.internal":                          "検査できませんでした: {detail}",

	"exception.name":          "{name} という名前はありません",
	"exception.type":          "{expected} が必要ですが {given} を受け取りました",
	"exception.unimplemented": "まだ実装されていません",
	"exception.context.empty": "実行する評価がありません",
	"exception.context.full":  "進行中の評価が多すぎます",
	"exception.conversion":    "{from} から {to} への変換はありません",
	"exception.value":         "値が必要です: {detail}",
	"exception.semantic":      "解釈できないものに到達しました",

	"step.start":  "{node} を開始",
	"step.finish": "{node} を終了",
	"step.halt":   "停止: {reason}",
	"step.jump":   "{count} ステップをスキップ",
	"step.jumpif": "値が {when} なら {count} ステップをスキップ",

	"log.conflicts": "{count} 件の問題",
	"log.value":     "値",
}
